package section

import (
	"fmt"
	"strings"

	"txdash/domain/dataset"
	"txdash/internal/errors"
)

// Section is one of the five dashboard views
type Section string

const (
	TopAddresses         Section = "Top Addresses"
	GasTrends            Section = "Gas Trends"
	ContractInteractions Section = "Smart Contract Interactions"
	Anomalies            Section = "Anomalies"
	EfficiencyAnalysis   Section = "Efficiency Analysis"
)

// All lists the sections in navigation order
var All = []Section{
	TopAddresses,
	GasTrends,
	ContractInteractions,
	Anomalies,
	EfficiencyAnalysis,
}

type meta struct {
	slug     string
	heading  string
	datasets []dataset.Name
}

var sections = map[Section]meta{
	TopAddresses: {
		slug:    "top-addresses",
		heading: "🔝 Top Addresses by Activity",
		datasets: []dataset.Name{
			dataset.TopFromCount,
			dataset.TopFromVolume,
			dataset.TopToCount,
		},
	},
	GasTrends: {
		slug:    "gas-trends",
		heading: "⛽ Gas Usage & Congestion Trends",
		datasets: []dataset.Name{
			dataset.AvgGasPerBlock,
			dataset.AvgCongestion,
			dataset.GasCostData,
			dataset.CongestionRatioAllTx,
			dataset.BlockCongestionUnique,
		},
	},
	ContractInteractions: {
		slug:    "smart-contract-interactions",
		heading: "📄 Smart Contract Interactions",
		datasets: []dataset.Name{
			dataset.TopContractsByTx,
			dataset.TopContractsByGas,
			dataset.ContractGasEfficiency,
		},
	},
	Anomalies: {
		slug:    "anomalies",
		heading: "🚨 Anomaly Detection",
		datasets: []dataset.Name{
			dataset.ZScoreAnomalies,
			dataset.InputSizeAnomalies,
			dataset.KMeansOutliers,
		},
	},
	EfficiencyAnalysis: {
		slug:    "efficiency-analysis",
		heading: "⚙️ Gas vs Value Efficiency",
		datasets: []dataset.Name{
			dataset.TopSpenders,
			dataset.TopValueToGasRatio,
		},
	},
}

// Default is the section shown when none is selected
func Default() Section {
	return TopAddresses
}

// Parse accepts a section display name or its slug, case-insensitively
func Parse(s string) (Section, error) {
	v := strings.TrimSpace(s)
	for _, sec := range All {
		if strings.EqualFold(v, string(sec)) || strings.EqualFold(v, sections[sec].slug) {
			return sec, nil
		}
	}
	return "", errors.NotFound(fmt.Sprintf("section %q", s))
}

// Valid reports whether s is one of the five sections
func (s Section) Valid() bool {
	_, ok := sections[s]
	return ok
}

// String returns the display name
func (s Section) String() string {
	return string(s)
}

// Slug returns the URL path segment for the section
func (s Section) Slug() string {
	return sections[s].slug
}

// Heading returns the page subheader
func (s Section) Heading() string {
	return sections[s].heading
}

// Datasets returns the datasets the section reads, in draw order
func (s Section) Datasets() []dataset.Name {
	names := sections[s].datasets
	out := make([]dataset.Name, len(names))
	copy(out, names)
	return out
}
