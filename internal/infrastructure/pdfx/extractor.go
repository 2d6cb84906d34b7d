// Package pdfx extrae texto plano de documentos PDF para alimentar el
// resumidor de IA. No genera PDFs; eso vive en infrastructure/report.
package pdfx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/cosmic-portals/portals-api/internal/application/ports"
)

var _ ports.PDFTextExtractor = (*Extractor)(nil)

// Extractor implementa ports.PDFTextExtractor sobre github.com/ledongthuc/pdf.
type Extractor struct{}

// NewExtractor construye el extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// ExtractText devuelve el texto plano de todas las páginas del PDF.
// Un PDF sin capa de texto (solo imágenes escaneadas) produce cadena vacía,
// no error; el caller decide cómo tratarlo.
func (e *Extractor) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf: abrir documento: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Página corrupta: seguir con las demás
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}
