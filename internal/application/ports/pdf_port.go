package ports

// PDFTextExtractor puerto de salida para extraer texto plano de un PDF.
type PDFTextExtractor interface {
	ExtractText(data []byte) (string, error)
}
