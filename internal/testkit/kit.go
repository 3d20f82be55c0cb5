package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"txdash/domain/dataset"
)

// Addresses used across fixtures
var Addresses = []string{
	"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
	"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359",
	"0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb",
	"0xd1220a0cf47c7b9be7a2e6ba89f429762e7b9adb",
}

// Fixture row counts, chosen so tests can assert on them
const (
	ZScoreRows     = 12
	KMeansRows     = 7
	InputSizeRows  = 3
	GasCostRows    = 40
	CongestionRows = 30
	BlockRows      = 10
)

// Fixtures returns valid CSV content for every dataset, keyed by name
func Fixtures() map[dataset.Name]string {
	f := map[dataset.Name]string{
		dataset.TopFromCount:  csvOf("from_address,count", Addresses[0]+",42", Addresses[1]+",17", Addresses[2]+",9"),
		dataset.TopFromVolume: csvOf("", Addresses[0]+",12.5", Addresses[1]+",3.25", Addresses[3]+",0.75"),
		dataset.TopToCount:    csvOf("to_address,count", Addresses[2]+",30", Addresses[3]+",11"),

		dataset.TopContractsByTx:      csvOf("to_address,tx_count", Addresses[2]+",120", Addresses[3]+",64"),
		dataset.TopContractsByGas:     csvOf("to_address,total_gas", Addresses[3]+",9100000", Addresses[2]+",4200000"),
		dataset.ContractGasEfficiency: csvOf("to_address,tx_count,avg_gas_used,avg_gas_cost_eth", Addresses[2]+",120,35000,0.00042", Addresses[3]+",64,142187.5,0.0017"),

		dataset.TopSpenders:        csvOf("from_address,total_gas_cost_eth", Addresses[0]+",0.91", Addresses[1]+",0.33"),
		dataset.TopValueToGasRatio: csvOf("hash,value_eth,gas_cost_eth,value_to_gas_ratio", txHash(1)+",5.0,0.001,5000", txHash(2)+",1.2,0.0004,3000"),
	}

	var avgGas, avgCongestion, unique []string
	for i := 0; i < BlockRows; i++ {
		block := 1000 + i
		avgGas = append(avgGas, fmt.Sprintf("%d,%d", block, 21000+i*1500))
		avgCongestion = append(avgCongestion, fmt.Sprintf("%d,%.2f", block, 0.3+float64(i%5)*0.1))
		unique = append(unique, fmt.Sprintf("%d,%.3f", block, 0.25+float64(i)*0.05))
	}
	f[dataset.AvgGasPerBlock] = csvOf("block_number,avg_gas", avgGas...)
	f[dataset.AvgCongestion] = csvOf("block_number,avg_congestion", avgCongestion...)
	f[dataset.BlockCongestionUnique] = csvOf("block_number,congestion_ratio", unique...)

	var gasCost []string
	for i := 0; i < GasCostRows; i++ {
		gasCost = append(gasCost, fmt.Sprintf("%s,%.6f", txHash(i), 0.0001*float64(1+i%8)))
	}
	f[dataset.GasCostData] = csvOf("hash,gas_cost_eth", gasCost...)

	var congestion []string
	for i := 0; i < CongestionRows; i++ {
		congestion = append(congestion, fmt.Sprintf("%s,%d,%.3f", txHash(i), 1000+i%BlockRows, 0.2+float64(i%7)*0.1))
	}
	f[dataset.CongestionRatioAllTx] = csvOf("hash,block_number,congestion_ratio", congestion...)

	f[dataset.ZScoreAnomalies] = csvOf("hash,gas_used,zscore", rowsOf(ZScoreRows, func(i int) string {
		return fmt.Sprintf("%s,%d,%.2f", txHash(100+i), 900000+i*1000, 3.1+float64(i)*0.1)
	})...)
	f[dataset.KMeansOutliers] = csvOf("hash,gas_used,value_eth,cluster,distance", rowsOf(KMeansRows, func(i int) string {
		return fmt.Sprintf("%s,%d,%.2f,%d,%.3f", txHash(200+i), 50000+i*250, float64(i)*0.5, i%3, 4.2+float64(i))
	})...)
	f[dataset.InputSizeAnomalies] = csvOf("hash,input_size", rowsOf(InputSizeRows, func(i int) string {
		return fmt.Sprintf("%s,%d", txHash(300+i), 24000+i*512)
	})...)

	return f
}

// WriteFixtures writes every fixture into dir under its catalog file name
func WriteFixtures(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create fixture directory: %w", err)
	}
	fixtures := Fixtures()
	for _, spec := range dataset.Catalog {
		if err := os.WriteFile(filepath.Join(dir, spec.File), []byte(fixtures[spec.Name]), 0644); err != nil {
			return fmt.Errorf("failed to write fixture %s: %w", spec.File, err)
		}
	}
	return nil
}

// NewProcessedDir writes a complete fixture directory under t.TempDir()
func NewProcessedDir(tb testing.TB) string {
	tb.Helper()
	dir := filepath.Join(tb.TempDir(), "processed")
	if err := WriteFixtures(dir); err != nil {
		tb.Fatalf("writing fixtures: %v", err)
	}
	return dir
}

// Overwrite replaces one dataset file in dir with content
func Overwrite(tb testing.TB, dir string, name dataset.Name, content string) {
	tb.Helper()
	spec, ok := dataset.Lookup(name)
	if !ok {
		tb.Fatalf("unknown dataset %s", name)
	}
	if err := os.WriteFile(filepath.Join(dir, spec.File), []byte(content), 0644); err != nil {
		tb.Fatalf("overwriting %s: %v", spec.File, err)
	}
}

// Remove deletes one dataset file from dir
func Remove(tb testing.TB, dir string, name dataset.Name) {
	tb.Helper()
	spec, ok := dataset.Lookup(name)
	if !ok {
		tb.Fatalf("unknown dataset %s", name)
	}
	if err := os.Remove(filepath.Join(dir, spec.File)); err != nil {
		tb.Fatalf("removing %s: %v", spec.File, err)
	}
}

func csvOf(header string, rows ...string) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteByte('\n')
	}
	for _, row := range rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func rowsOf(n int, row func(i int) string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = row(i)
	}
	return out
}

func txHash(i int) string {
	return fmt.Sprintf("0x%064x", i+1)
}
