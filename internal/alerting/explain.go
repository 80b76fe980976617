package alerting

func ExplainBurnRate() string {
	return `A burn rate is how fast a function consumes its error budget relative to the 30-day objective period. A burn rate of 1 spends exactly the budget over 30 days; a burn rate of 14.4 exhausts it in about two days.

Each alert combines a fast window (catch outages quickly) with a slow window (avoid noise from brief spikes), and fires only when both exceed the threshold at once.

Page severity fires at 14.4x over 5m and 1h, or at 6x over 30m and 6h. Ticket severity fires at 3x over 2h and 1d, or at 1x over 6h and 3d.`
}
