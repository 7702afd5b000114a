package trainer

import "github.com/prometheus/client_golang/prometheus"

var (
	episodesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_training_episodes_total",
		Help: "Total training episodes completed",
	})
	outcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_training_outcomes_total",
		Help: "Dispatch outcomes by reason tag",
	}, []string{"reason"})
	episodeReward = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_training_episode_reward",
		Help:    "Per-episode reward",
		Buckets: prometheus.LinearBuckets(-100, 20, 10),
	})
	epsilonGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_training_epsilon",
		Help: "Current exploration rate",
	})
)

func init() {
	prometheus.MustRegister(episodesTotal, outcomesTotal, episodeReward, epsilonGauge)
}
