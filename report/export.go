package report

import (
	"context"
	"fmt"
	"time"

	"github.com/okushigue/zetascan/codec"
	"github.com/okushigue/zetascan/scan"
)

// Envelope wraps an exported session with the codec that encoded it, so
// files stay decodable if the default codec changes.
type Envelope struct {
	Codec     string        `json:"codec"`
	Generated time.Time     `json:"generated"`
	Session   SessionExport `json:"session"`
}

// SessionExport is the serializable form of a scan result.
type SessionExport struct {
	Catalog      string       `json:"catalog"`
	Mode         string       `json:"mode"`
	ScannedZeros int          `json:"scanned_zeros"`
	TotalZeros   int          `json:"total_zeros"`
	Batches      int          `json:"batches"`
	Stopped      bool         `json:"stopped"`
	StatsSkipped bool         `json:"stats_skipped"`
	Cells        []CellExport `json:"cells"`
	Best         *BestExport  `json:"best,omitempty"`
}

// CellExport is one (constant, tolerance) row. Test fields are nil when
// the test did not apply.
type CellExport struct {
	Constant     string   `json:"constant"`
	Tolerance    float64  `json:"tolerance"`
	Hits         int      `json:"hits"`
	Expected     *float64 `json:"expected,omitempty"`
	Significance *float64 `json:"significance,omitempty"`
	ChiSquare    *float64 `json:"chi_square,omitempty"`
	BinomialP    *float64 `json:"binomial_p,omitempty"`
	PoissonP     *float64 `json:"poisson_p,omitempty"`
	Significant  bool     `json:"significant"`
	Reason       string   `json:"reason,omitempty"`
}

// BestExport is the strongest resonance of the session.
type BestExport struct {
	Constant           string  `json:"constant"`
	Symbol             string  `json:"symbol"`
	Value              float64 `json:"value"`
	ZeroIndex          uint64  `json:"zero_index"`
	Gamma              float64 `json:"gamma"`
	Distance           float64 `json:"distance"`
	RelError           float64 `json:"relative_error"`
	Quality            float64 `json:"quality"`
	Tolerance          float64 `json:"tolerance"`
	PredictedEnergyGeV float64 `json:"predicted_energy_gev"`
}

// ExportScan flattens a scan result for serialization.
func ExportScan(res *scan.Result) SessionExport {
	out := SessionExport{
		Catalog:      res.Catalog,
		Mode:         res.Mode.String(),
		ScannedZeros: res.ScannedZeros,
		TotalZeros:   res.TotalZeros,
		Batches:      res.Batches,
		Stopped:      res.Stopped,
		StatsSkipped: res.StatsSkipped,
	}
	for name, cells := range res.Cells {
		for _, cell := range cells {
			out.Cells = append(out.Cells, exportCell(name, cell))
		}
	}
	if res.Best != nil {
		out.Best = &BestExport{
			Constant:           res.Best.Constant.Name,
			Symbol:             res.Best.Constant.Symbol,
			Value:              res.Best.Constant.Value,
			ZeroIndex:          res.Best.Hit.Index,
			Gamma:              res.Best.Hit.Gamma,
			Distance:           res.Best.Hit.Distance,
			RelError:           res.Best.Hit.RelError,
			Quality:            res.Best.Quality,
			Tolerance:          res.Best.Tolerance,
			PredictedEnergyGeV: res.Best.PredictedEnergyGeV(),
		}
	}
	return out
}

func exportCell(name string, cell *scan.Cell) CellExport {
	out := CellExport{
		Constant:    name,
		Tolerance:   cell.Set.Tolerance,
		Hits:        cell.Set.Count(),
		Significant: cell.Significant,
		Reason:      cell.Reason,
	}
	if a := cell.Analysis; a != nil {
		out.Expected = ptr(a.Summary.Expected)
		out.Significance = ptr(a.Summary.Significance)
		if a.ChiSquare != nil {
			out.ChiSquare = ptr(a.ChiSquare.Statistic)
		}
		if a.Binomial != nil {
			out.BinomialP = ptr(a.Binomial.PValue)
		}
		if a.Poisson != nil {
			out.PoissonP = ptr(a.Poisson.PValue)
		}
	}
	return out
}

func ptr(v float64) *float64 { return &v }

// WriteJSON exports a scan result as a self-describing JSON blob and
// returns the blob name.
func (w *Writer) WriteJSON(ctx context.Context, res *scan.Result) (string, error) {
	now := w.now()
	env := Envelope{
		Codec:     codec.Default.Name(),
		Generated: now,
		Session:   ExportScan(res),
	}
	data, err := codec.Default.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode session export: %w", err)
	}
	name := fmt.Sprintf("session_%s_%s.json", res.Catalog, now.Format("20060102_150405"))
	if err := w.store.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("write session export %s: %w", name, err)
	}
	w.logger.Info("wrote session export", "name", name, "codec", env.Codec)
	return name, nil
}

// DecodeExport reads a session export, selecting the codec recorded in the
// envelope.
func DecodeExport(data []byte) (*Envelope, error) {
	var probe struct {
		Codec string `json:"codec"`
	}
	if err := (codec.JSON{}).Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("read export header: %w", err)
	}
	c, ok := codec.ByName(probe.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown export codec %q", probe.Codec)
	}
	var env Envelope
	if err := c.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &env, nil
}
