package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Name is the logical name of one pre-computed dataset
type Name string

const (
	TopFromCount          Name = "top_from_count"
	TopFromVolume         Name = "top_from_volume"
	TopToCount            Name = "top_to_count"
	AvgGasPerBlock        Name = "avg_gas_per_block"
	AvgCongestion         Name = "avg_congestion"
	GasCostData           Name = "gas_cost_data"
	TopContractsByTx      Name = "top_contracts_by_tx"
	TopContractsByGas     Name = "top_contracts_by_gas"
	ContractGasEfficiency Name = "contract_gas_efficiency"
	TopSpenders           Name = "top_spenders"
	TopValueToGasRatio    Name = "top_value_to_gas_ratio"
	ZScoreAnomalies       Name = "zscore_anomalies"
	KMeansOutliers        Name = "kmeans_outliers"
	InputSizeAnomalies    Name = "input_size_anomalies"
	CongestionRatioAllTx  Name = "congestion_ratio_all_tx"
	BlockCongestionUnique Name = "block_congestion_unique"
)

// Column names the renderer depends on
const (
	ColumnAddress         = "address"
	ColumnETHVolume       = "eth_volume"
	ColumnBlockNumber     = "block_number"
	ColumnGasCostETH      = "gas_cost_eth"
	ColumnCongestionRatio = "congestion_ratio"
)

// Spec is the file and schema contract of one dataset
type Spec struct {
	Name Name
	File string
	// Headerless files carry no header row; Columns are assigned positionally.
	Headerless bool
	Columns    []string
	// IndexFirst marks the first column as the row index.
	IndexFirst bool
	Required   []string
}

// Catalog lists every dataset the dashboard reads, in load order
var Catalog = []Spec{
	{Name: TopFromCount, File: "top_from_count.csv", IndexFirst: true},
	{
		Name:       TopFromVolume,
		File:       "top_from_volume.csv",
		Headerless: true,
		Columns:    []string{ColumnAddress, ColumnETHVolume},
		IndexFirst: true,
		Required:   []string{ColumnAddress, ColumnETHVolume},
	},
	{Name: TopToCount, File: "top_to_count.csv", IndexFirst: true},
	{Name: AvgGasPerBlock, File: "avg_gas_per_block.csv", Required: []string{ColumnBlockNumber}},
	{Name: AvgCongestion, File: "avg_congestion_per_block.csv", Required: []string{ColumnBlockNumber}},
	{Name: GasCostData, File: "gas_cost_data.csv", Required: []string{ColumnGasCostETH}},
	{Name: TopContractsByTx, File: "top_contracts_by_tx.csv"},
	{Name: TopContractsByGas, File: "top_contracts_by_gas.csv"},
	{Name: ContractGasEfficiency, File: "contract_gas_efficiency.csv"},
	{Name: TopSpenders, File: "top_spenders.csv"},
	{Name: TopValueToGasRatio, File: "top_value_to_gas_ratio.csv"},
	{Name: ZScoreAnomalies, File: "zscore_anomalies.csv"},
	{Name: KMeansOutliers, File: "kmeans_outliers.csv"},
	{Name: InputSizeAnomalies, File: "input_size_anomalies.csv"},
	{Name: CongestionRatioAllTx, File: "congestion_ratio_all_tx.csv", Required: []string{ColumnCongestionRatio}},
	{Name: BlockCongestionUnique, File: "block_congestion_unique.csv", Required: []string{ColumnCongestionRatio}},
}

// Lookup returns the spec registered for name
func Lookup(name Name) (Spec, bool) {
	for _, spec := range Catalog {
		if spec.Name == name {
			return spec, true
		}
	}
	return Spec{}, false
}

// ParseName resolves a logical dataset name
func ParseName(s string) (Name, bool) {
	spec, ok := Lookup(Name(strings.TrimSpace(s)))
	return spec.Name, ok
}

// Value is one table cell: the raw text plus its numeric reading when it has one
type Value struct {
	Text    string  `json:"text"`
	Number  float64 `json:"number,omitempty"`
	Numeric bool    `json:"numeric"`
}

// ParseValue reads a raw cell
func ParseValue(raw string) Value {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Value{}
	}
	// Addresses and hashes are hex text, never hex floats.
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		return Value{Text: text}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Value{Text: text, Number: f, Numeric: true}
	}
	return Value{Text: text}
}

// IsEmpty reports a missing cell
func (v Value) IsEmpty() bool {
	return v.Text == ""
}

// IsFinite reports a numeric cell that is neither NaN nor infinite
func (v Value) IsFinite() bool {
	return v.Numeric && !math.IsNaN(v.Number) && !math.IsInf(v.Number, 0)
}
