package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/lattice/approx"
	"github.com/meenmo/lattice/brownian"
	"github.com/meenmo/lattice/calendar"
	"github.com/meenmo/lattice/config"
	"github.com/meenmo/lattice/extend"
	"github.com/meenmo/lattice/internal/refmodel"
	"github.com/meenmo/lattice/interp"
	"github.com/meenmo/lattice/payoff"
	"github.com/meenmo/lattice/pricing"
	"github.com/meenmo/lattice/utils"
)

const defaultDecimals = 6

// schedule is the event timeline of one trade. times[0] is the valuation
// date and the last time the expiry.
type schedule struct {
	times   []float64
	fixings []int
}

func buildSchedule(in priceInput) (*schedule, error) {
	valuation, err := utils.ParseDate(in.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("valuation_date: %w", err)
	}
	expiry, err := utils.ParseDate(in.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("expiry_date: %w", err)
	}

	holidays := make([]time.Time, 0, len(in.Holidays))
	for _, h := range in.Holidays {
		d, err := utils.ParseDate(h)
		if err != nil {
			return nil, fmt.Errorf("holidays: %w", err)
		}
		holidays = append(holidays, d)
	}
	cal := calendar.New(holidays...)
	conv := calendar.Convention(in.BusinessDay)
	if in.BusinessDay == "" {
		conv = calendar.ModifiedFollowing
	}
	expiry = cal.Adjust(conv, expiry)
	if !expiry.After(valuation) {
		return nil, fmt.Errorf("expiry %s is not after valuation %s", expiry.Format(utils.DateLayout), in.ValuationDate)
	}

	fixings := make([]time.Time, 0, len(in.FixingDates))
	for _, f := range in.FixingDates {
		d, err := utils.ParseDate(f)
		if err != nil {
			return nil, fmt.Errorf("fixing_dates: %w", err)
		}
		d = cal.Adjust(conv, d)
		if !d.After(valuation) || d.After(expiry) {
			return nil, fmt.Errorf("fixing %s outside (%s, %s]", d.Format(utils.DateLayout),
				in.ValuationDate, expiry.Format(utils.DateLayout))
		}
		fixings = append(fixings, d)
	}

	dayCount := in.DayCount
	if dayCount == "" {
		dayCount = utils.Act365F
	}
	if !utils.IsDayCount(dayCount) {
		return nil, fmt.Errorf("unsupported day_count %q", in.DayCount)
	}
	// The expiry is the latest date, so it is the last event time.
	ts, pos, err := utils.Timeline(valuation, append(fixings, expiry), dayCount)
	if err != nil {
		return nil, err
	}
	s := &schedule{times: append([]float64{0}, ts...)}
	for _, k := range pos[:len(fixings)] {
		s.fixings = utils.Union(s.fixings, []int{k + 1})
	}
	return s, nil
}

func process(in priceInput, logger *slog.Logger) (*priceOutput, error) {
	if !(in.Spot > 0) || !(in.Vol > 0) {
		return nil, fmt.Errorf("spot and vol must be positive")
	}
	if !(in.Strike > 0) {
		return nil, fmt.Errorf("strike must be positive")
	}
	s, err := buildSchedule(in)
	if err != nil {
		return nil, err
	}

	cfg := config.GetConfig()
	quality, pathQuality := cfg.Quality, cfg.PathQuality
	if in.Quality > 0 {
		quality = in.Quality
	}
	if in.PathQuality > 0 {
		pathQuality = in.PathQuality
	}

	l := refmodel.Lognormal{
		Spot:     in.Spot,
		Vol:      in.Vol,
		Rate:     in.Rate,
		Dividend: in.Dividend,
		Grid:     []brownian.Option{brownian.WithQuality(quality), brownian.WithLogger(logger)},
	}
	m, err := pricing.New(l, s.times,
		pricing.WithSchemes(approx.FromInterp(approx.Size(pathQuality), interp.Spline{})),
		pricing.WithWorkers(cfg.Workers),
		pricing.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	last := len(s.times) - 1
	expiry := s.times[last]
	var p *payoff.Payoff
	var ref *float64
	switch in.Product {
	case "european_call":
		p = l.SpotAt(m, last).SubC(in.Strike).MaxC(0)
		r := l.Call(in.Strike, expiry)
		ref = &r
	case "european_put":
		p = l.SpotAt(m, last).RSub(in.Strike).MaxC(0)
		r := l.Put(in.Strike, expiry)
		ref = &r
	case "asian_call":
		if len(s.fixings) == 0 {
			return nil, fmt.Errorf("asian_call needs fixing_dates")
		}
		idx, err := m.AddState(average(l, m, s.fixings))
		if err != nil {
			return nil, err
		}
		p = m.State(last, idx).SubC(in.Strike).MaxC(0)
	case "barrier_up_out_call":
		if !(in.Barrier > 0) || len(s.fixings) == 0 {
			return nil, fmt.Errorf("barrier_up_out_call needs a positive barrier and fixing_dates")
		}
		p = l.SpotAt(m, last).SubC(in.Strike).MaxC(0)
		for k := len(s.fixings) - 1; k >= 0; k-- {
			t := s.fixings[k]
			p.Rollback(t)
			p = p.Mul(l.SpotAt(m, t).IndicatorBelow(in.Barrier))
		}
	default:
		return nil, fmt.Errorf("unsupported product %q", in.Product)
	}

	p.Rollback(0)
	v, err := p.AtOrigin()
	if err != nil {
		return nil, err
	}

	decimals := int32(defaultDecimals)
	if in.Decimals != nil {
		decimals = *in.Decimals
	}
	if ref != nil {
		r := round(*ref, decimals)
		ref = &r
	}
	return &priceOutput{
		TaskID:     in.TaskID,
		Product:    in.Product,
		Price:      round(v, decimals),
		Reference:  ref,
		EventTimes: s.times,
	}, nil
}

// average is the running arithmetic average of the spot over the fixings.
func average(l refmodel.Lognormal, m *pricing.Model, fixings []int) extend.Spec {
	return extend.Spec{
		Reset: func(time int, before float64) *payoff.Payoff {
			k := float64(utils.LowerBoundInt(fixings, time) + 1)
			return l.SpotAt(m, time).MulC(1 / k).AddC(before * (k - 1) / k)
		},
		Times:  fixings,
		Origin: 0,
	}
}

func round(v float64, decimals int32) float64 {
	return decimal.NewFromFloat(v).Round(decimals).InexactFloat64()
}
