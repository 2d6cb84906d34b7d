// Package report genera el reporte PDF de analítica de un dispositivo NFC
// (resumen de escaneos y serie diaria) usando Maroto v2.
package report

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/ports"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
)

var _ ports.DeviceReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 88, Green: 28, Blue: 135} // púrpura Cosmic Portals
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa ports.DeviceReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDeviceReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDeviceReport(
	_ context.Context,
	device *entity.NFCDevice,
	org *entity.Organization,
	analytics *dto.DeviceAnalyticsResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de escaneos NFC", true).
		WithAuthor(org.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(device, org))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(device, analytics))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Conteo por tipo de escaneo
	m.AddRows(sectionTitleRow("Escaneos por tipo"))
	for _, r := range byTypeRows(analytics.CountByType) {
		m.AddRows(r)
	}

	// Serie diaria
	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("Escaneos por día"))
	m.AddRows(dailyHeaderRow())
	for _, r := range dailyRows(analytics.ScansPerDay) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del dispositivo (izq) y organización (der).
func headerRow(device *entity.NFCDevice, org *entity.Organization) core.Row {
	name := device.Metadata.Name
	if name == "" {
		name = device.DeviceID
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Device ID: "+device.DeviceID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(org.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Tipo: "+device.DeviceType, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales principales en tres columnas.
func summaryRow(device *entity.NFCDevice, analytics *dto.DeviceAnalyticsResponse) core.Row {
	lastScan := "nunca"
	if device.LastScan != nil {
		lastScan = device.LastScan.Format("02/01/2006 15:04")
	}
	return row.New(16).Add(
		metricCol("Escaneos totales", fmt.Sprintf("%d", analytics.TotalScans)),
		metricCol("Días activos", fmt.Sprintf("%d", analytics.ActiveDays)),
		metricCol("Último escaneo", lastScan),
	)
}

func metricCol(label, value string) core.Col {
	return col.New(4).Add(
		text.New(label, props.Text{Size: 8, Color: colorGray, Top: 2}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 7}),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
		),
	)
}

func byTypeRows(countByType map[string]int64) []core.Row {
	// Orden estable para que el PDF sea reproducible
	types := make([]string, 0, len(countByType))
	for t := range countByType {
		types = append(types, t)
	}
	sort.Strings(types)

	rows := make([]core.Row, 0, len(types))
	for _, t := range types {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(t, props.Text{Size: 9, Top: 1})),
			col.New(6).Add(text.New(fmt.Sprintf("%d", countByType[t]), props.Text{Size: 9, Align: align.Right, Top: 1})),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(6).Add(
			col.New(12).Add(text.New("Sin escaneos registrados", props.Text{Size: 9, Color: colorGray, Top: 1})),
		))
	}
	return rows
}

func dailyHeaderRow() core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New("Día", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
		col.New(6).Add(text.New("Escaneos", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1})),
	)
}

func dailyRows(buckets []dto.DailyScansDTO) []core.Row {
	rows := make([]core.Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(b.Day, props.Text{Size: 9, Top: 1})),
			col.New(6).Add(text.New(fmt.Sprintf("%d", b.Count), props.Text{Size: 9, Align: align.Right, Top: 1})),
		))
	}
	return rows
}
