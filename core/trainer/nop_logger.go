package trainer

// nopLogger keeps the trainer usable without a configured logger.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
