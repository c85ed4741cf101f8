package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/skaterent/rentbot/internal/repository"
)

const (
	timeLayout  = "2006-01-02 15:04:05"
	stampLayout = "20060102_1504"
	defaultTopN = 5
	utf8BOM     = "\ufeff"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("no data to report")

type Source interface {
	RentalHistory(ctx context.Context, clientID int64) ([]*repository.RentalHistoryRow, error)
	PopularSizes(ctx context.Context, limit int) ([]*repository.SizePopularity, error)
	DailyIncome(ctx context.Context) ([]*repository.DailyIncome, error)
}

// Artifact is a generated file, kept on disk until Cleanup and returned in
// memory for sending.
type Artifact struct {
	Path string
	Name string
	Data []byte
}

type Generator struct {
	source     Source
	reportsDir string
	chartsDir  string
	topN       int
	logger     *zap.Logger
	timeNow    func() time.Time
}

// NewGenerator creates the reports and charts directories under dir.
func NewGenerator(source Source, dir string, logger *zap.Logger) (*Generator, error) {
	g := &Generator{
		source:     source,
		reportsDir: filepath.Join(dir, "reports"),
		chartsDir:  filepath.Join(dir, "charts"),
		topN:       defaultTopN,
		logger:     logger,
		timeNow:    time.Now,
	}
	for _, d := range []string{g.reportsDir, g.chartsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return g, nil
}

// RentalReport writes the customer's rental history as CSV. Active rentals
// have empty end time, cost and duration.
func (g *Generator) RentalReport(ctx context.Context, telegramID, customerID int64) (*Artifact, error) {
	rows, err := g.source.RentalHistory(ctx, customerID)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"start_time", "end_time", "brand", "size", "total_cost", "duration_hours"})
	for _, r := range rows {
		var end, duration string
		if r.EndTime != nil {
			end = r.EndTime.Format(timeLayout)
			duration = fmt.Sprintf("%.2f", r.EndTime.Sub(r.StartTime).Hours())
		}
		var cost string
		if r.TotalCost != nil {
			cost = FormatCurrency(*r.TotalCost)
		}
		records = append(records, []string{
			r.StartTime.Format(timeLayout),
			end,
			r.Brand,
			strconv.Itoa(r.Size),
			cost,
			duration,
		})
	}

	name := fmt.Sprintf("user_%d_report_%s.csv", telegramID, g.timeNow().Format(stampLayout))
	art, err := g.writeCSV(g.reportsDir, name, records)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Generated rental report", zap.Int64("telegram_id", telegramID), zap.Int("rows", len(rows)))
	return art, nil
}

// IncomeReport writes daily payment totals as CSV.
func (g *Generator) IncomeReport(ctx context.Context) (*Artifact, error) {
	rows, err := g.source.DailyIncome(ctx)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"day", "total_income", "transactions_count"})
	for _, r := range rows {
		records = append(records, []string{
			r.Day.Format("2006-01-02"),
			FormatCurrency(r.TotalIncome),
			strconv.FormatInt(r.TransactionsCount, 10),
		})
	}

	name := fmt.Sprintf("income_report_%s.csv", g.timeNow().Format(stampLayout))
	return g.writeCSV(g.reportsDir, name, records)
}

func (g *Generator) writeCSV(dir, name string, records [][]string) (*Artifact, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return g.save(dir, name, buf.Bytes())
}

// PopularityChart renders the most rented sizes as a PNG bar chart. It
// returns ErrNoData when nothing was ever rented.
func (g *Generator) PopularityChart(ctx context.Context) (*Artifact, error) {
	rows, err := g.source.PopularSizes(ctx, g.topN)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	data, err := renderBarChart(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	name := fmt.Sprintf("size_chart_%s.png", g.timeNow().Format(stampLayout))
	art, err := g.save(g.chartsDir, name, data)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Generated size popularity chart", zap.Int("sizes", len(rows)))
	return art, nil
}

func renderBarChart(rows []*repository.SizePopularity) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Топ популярных размеров коньков"
	p.X.Label.Text = "Размер"
	p.Y.Label.Text = "Количество аренд"

	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	points := make(plotter.XYs, len(rows))
	counts := make([]string, len(rows))
	for i, r := range rows {
		values[i] = float64(r.RentalsCount)
		names[i] = strconv.Itoa(r.Size)
		points[i] = plotter.XY{X: float64(i), Y: float64(r.RentalsCount)}
		counts[i] = strconv.FormatInt(r.RentalsCount, 10)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 0, G: 128, B: 128, A: 180}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: counts})
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	wt, err := p.WriterTo(12*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) save(dir, name string, data []byte) (*Artifact, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return &Artifact{Path: path, Name: name, Data: data}, nil
}

// Cleanup removes generated files whose modification time is older than
// maxAge and returns how many were removed.
func (g *Generator) Cleanup(maxAge time.Duration) (int, error) {
	cutoff := g.timeNow().Add(-maxAge)
	removed := 0
	var errs []error

	for _, dir := range []string{g.reportsDir, g.chartsDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !info.ModTime().Before(cutoff) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
				continue
			}
			removed++
			g.logger.Debug("Removed report file", zap.String("path", path))
		}
	}

	if removed > 0 {
		g.logger.Info("Cleaned up report files", zap.Int("removed", removed))
	}
	return removed, errors.Join(errs...)
}

// FormatCurrency renders an amount in roubles with two decimals.
func FormatCurrency(v float64) string {
	return fmt.Sprintf("%.2f ₽", v)
}
