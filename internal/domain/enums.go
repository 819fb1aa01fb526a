package domain

type NodeKind string

const (
	NodeBranch NodeKind = "branch"
	NodeTask   NodeKind = "task"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyOther   Frequency = "other"
)

// Frequencies lists the accepted frequencies in display order.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyOther}

// legacyFrequencies maps the labels used by the original OpsMap files.
var legacyFrequencies = map[string]Frequency{
	"毎日":  FrequencyDaily,
	"毎週":  FrequencyWeekly,
	"毎月":  FrequencyMonthly,
	"その他": FrequencyOther,
}

// Valid reports whether f is one of the canonical frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyOther:
		return true
	}
	return false
}
