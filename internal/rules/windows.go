package rules

import (
	"time"

	"github.com/prometheus/common/model"
)

const budgetPeriodDays = 30

var (
	win5m  = model.Duration(5 * time.Minute)
	win30m = model.Duration(30 * time.Minute)
	win1h  = model.Duration(time.Hour)
	win2h  = model.Duration(2 * time.Hour)
	win6h  = model.Duration(6 * time.Hour)
	win1d  = model.Duration(24 * time.Hour)
	win3d  = model.Duration(3 * 24 * time.Hour)
	win30d = model.Duration(budgetPeriodDays * 24 * time.Hour)
)

var sliWindows = []model.Duration{win5m, win30m, win1h, win2h, win6h, win1d, win3d}

type burnBranch struct {
	short  model.Duration
	long   model.Duration
	factor float64
}
