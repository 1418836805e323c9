package domain

import (
	"fmt"
	"time"
)

type RangePreset string

const (
	PresetToday     RangePreset = "today"
	PresetYesterday RangePreset = "yesterday"
	PresetLast7     RangePreset = "last7"
	PresetThisMonth RangePreset = "thisMonth"
	PresetLastMonth RangePreset = "lastMonth"
	PresetCustom    RangePreset = "custom"
)

// Mapeamento de preset -> date_preset da Graph API
var presetToDatePreset = map[RangePreset]string{
	PresetToday:     "today",
	PresetYesterday: "yesterday",
	PresetLast7:     "last_7d",
	PresetThisMonth: "this_month",
	PresetLastMonth: "last_month",
}

// RangeSelection é o período escolhido no painel. Since/Until só valem para PresetCustom.
type RangeSelection struct {
	Preset RangePreset `json:"preset"`
	Since  string      `json:"since,omitempty"`
	Until  string      `json:"until,omitempty"`
}

func Preset(p RangePreset) RangeSelection {
	return RangeSelection{Preset: p}
}

func CustomRange(since, until string) RangeSelection {
	return RangeSelection{Preset: PresetCustom, Since: since, Until: until}
}

// Validate verifica o preset e, para intervalos customizados, as datas
func (r RangeSelection) Validate() error {
	if r.Preset == PresetCustom {
		since, err := time.Parse(time.DateOnly, r.Since)
		if err != nil {
			return fmt.Errorf("%w: data inicial inválida %q", ErrInvalidRange, r.Since)
		}
		until, err := time.Parse(time.DateOnly, r.Until)
		if err != nil {
			return fmt.Errorf("%w: data final inválida %q", ErrInvalidRange, r.Until)
		}
		if since.After(until) {
			return fmt.Errorf("%w: %s é posterior a %s", ErrInvalidRange, r.Since, r.Until)
		}
		return nil
	}

	if _, ok := presetToDatePreset[r.Preset]; !ok {
		return fmt.Errorf("%w: preset desconhecido %q", ErrInvalidRange, r.Preset)
	}
	return nil
}

// DatePreset devolve o date_preset da Graph API, ou "" para intervalos customizados
func (r RangeSelection) DatePreset() string {
	return presetToDatePreset[r.Preset]
}

// Resolve converte a seleção em datas concretas (inclusivas) relativas a now.
// last7 segue a semântica da Graph API: os sete dias completos até ontem.
func (r RangeSelection) Resolve(now time.Time) (since, until time.Time, err error) {
	if err := r.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch r.Preset {
	case PresetToday:
		return today, today, nil
	case PresetYesterday:
		y := today.AddDate(0, 0, -1)
		return y, y, nil
	case PresetLast7:
		return today.AddDate(0, 0, -7), today.AddDate(0, 0, -1), nil
	case PresetThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first, first.AddDate(0, 1, -1), nil
	case PresetLastMonth:
		first := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, today.Location())
		return first, first.AddDate(0, 1, -1), nil
	}

	since, _ = time.ParseInLocation(time.DateOnly, r.Since, now.Location())
	until, _ = time.ParseInLocation(time.DateOnly, r.Until, now.Location())
	return since, until, nil
}

// Contains indica se a data (YYYY-MM-DD) cai dentro do período resolvido
func (r RangeSelection) Contains(now time.Time, date string) bool {
	since, until, err := r.Resolve(now)
	if err != nil {
		return false
	}
	d, err := time.ParseInLocation(time.DateOnly, date, now.Location())
	if err != nil {
		return false
	}
	return !d.Before(since) && !d.After(until)
}

func (r RangeSelection) String() string {
	if r.Preset == PresetCustom {
		return fmt.Sprintf("%s..%s", r.Since, r.Until)
	}
	return string(r.Preset)
}
