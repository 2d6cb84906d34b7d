package analyze_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-portals/portals-api/internal/application/analyze"
	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeAnalysisRepo implementación en memoria, segura para la goroutine de
// procesamiento.
type fakeAnalysisRepo struct {
	mu      sync.Mutex
	results map[string]*entity.AnalysisResult
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{results: map[string]*entity.AnalysisResult{}}
}

func (f *fakeAnalysisRepo) Create(r *entity.AnalysisResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.results[r.ID] = &cp
	return nil
}
func (f *fakeAnalysisRepo) GetByID(id string) (*entity.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.results[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeAnalysisRepo) ListByUser(userID string, limit, offset int) ([]*entity.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.AnalysisResult
	for _, r := range f.results {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeAnalysisRepo) Update(r *entity.AnalysisResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.results[r.ID] = &cp
	return nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(_ []byte) (string, error) { return f.text, f.err }

type fakeLLM struct {
	mu      sync.Mutex
	calls   int
	summary *dto.DocumentSummaryDTO
	err     error
}

func (f *fakeLLM) SummarizeDocument(_ context.Context, _ string) (*dto.DocumentSummaryDTO, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.summary, f.err
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const testUser = "00000000-0000-0000-0000-0000000000aa"

func newAnalyzeUC(repo *fakeAnalysisRepo, ext *fakeExtractor, llm *fakeLLM) *analyze.UseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return analyze.NewUseCase(repo, ext, llm, 10, log)
}

// waitStatus espera hasta que el análisis salga de processing.
func waitStatus(t *testing.T, repo *fakeAnalysisRepo, id string) *entity.AnalysisResult {
	t.Helper()
	var out *entity.AnalysisResult
	require.Eventually(t, func() bool {
		r, _ := repo.GetByID(id)
		if r == nil || r.Status == entity.AnalysisProcessing {
			return false
		}
		out = r
		return true
	}, 2*time.Second, 10*time.Millisecond, "el análisis debe terminar")
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests validación (antes de tocar la IA)
// ──────────────────────────────────────────────────────────────────────────────

// Un archivo que no es PDF se rechaza sin llamar jamás al servicio de IA.
func TestAnalyze_Submit_RechazaNoPDFSinLlamarIA(t *testing.T) {
	llm := &fakeLLM{}
	uc := newAnalyzeUC(newFakeAnalysisRepo(), &fakeExtractor{}, llm)

	_, err := uc.Submit(testUser, "notas.txt", "text/plain", []byte("hola"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, llm.callCount(), "un archivo inválido nunca llega a la IA")
}

func TestAnalyze_Submit_RechazaContentTypeIncorrecto(t *testing.T) {
	uc := newAnalyzeUC(newFakeAnalysisRepo(), &fakeExtractor{}, &fakeLLM{})

	_, err := uc.Submit(testUser, "doc.pdf", "application/zip", []byte("%PDF-"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalyze_Submit_RechazaArchivoVacio(t *testing.T) {
	uc := newAnalyzeUC(newFakeAnalysisRepo(), &fakeExtractor{}, &fakeLLM{})

	_, err := uc.Submit(testUser, "doc.pdf", "application/pdf", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalyze_Submit_RechazaArchivoGigante(t *testing.T) {
	uc := newAnalyzeUC(newFakeAnalysisRepo(), &fakeExtractor{}, &fakeLLM{})

	grande := make([]byte, 11*1024*1024) // límite de test: 10 MB
	_, err := uc.Submit(testUser, "doc.pdf", "application/pdf", grande)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests flujo asíncrono
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalyze_FlujoCompleto(t *testing.T) {
	repo := newFakeAnalysisRepo()
	ext := &fakeExtractor{text: "contenido del contrato de arrendamiento"}
	llm := &fakeLLM{summary: &dto.DocumentSummaryDTO{
		Summary:   "Contrato de arrendamiento a 12 meses.",
		KeyPoints: []string{"canon mensual", "cláusula de terminación"},
		WordCount: 5,
	}}
	uc := newAnalyzeUC(repo, ext, llm)

	accepted, err := uc.Submit(testUser, "contrato.pdf", "application/pdf", []byte("%PDF-1.7 ..."))
	require.NoError(t, err)
	assert.Equal(t, entity.AnalysisProcessing, accepted.Status, "la respuesta inmediata es processing")
	require.NotEmpty(t, accepted.AnalysisID)

	final := waitStatus(t, repo, accepted.AnalysisID)
	assert.Equal(t, entity.AnalysisCompleted, final.Status)
	assert.Equal(t, "Contrato de arrendamiento a 12 meses.", final.Summary)
	assert.Len(t, final.KeyPoints, 2)
	assert.Equal(t, 1, llm.callCount())
}

// Si el modelo omite word_count, se cuenta sobre el texto extraído.
func TestAnalyze_WordCountCero_UsaConteoLocal(t *testing.T) {
	repo := newFakeAnalysisRepo()
	ext := &fakeExtractor{text: "uno dos tres cuatro cinco"}
	llm := &fakeLLM{summary: &dto.DocumentSummaryDTO{
		Summary:   "Documento de cinco palabras.",
		KeyPoints: []string{"brevedad"},
		WordCount: 0,
	}}
	uc := newAnalyzeUC(repo, ext, llm)

	accepted, err := uc.Submit(testUser, "breve.pdf", "application/pdf", []byte("%PDF-1.7 ..."))
	require.NoError(t, err)

	final := waitStatus(t, repo, accepted.AnalysisID)
	assert.Equal(t, entity.AnalysisCompleted, final.Status)
	assert.Equal(t, 5, final.WordCount, "word_count se completa contando el texto extraído")
}

func TestAnalyze_PDFSinTexto_TerminaEnFailed(t *testing.T) {
	repo := newFakeAnalysisRepo()
	llm := &fakeLLM{}
	uc := newAnalyzeUC(repo, &fakeExtractor{text: "   \n  "}, llm)

	accepted, err := uc.Submit(testUser, "escaneado.pdf", "application/pdf", []byte("%PDF-"))
	require.NoError(t, err)

	final := waitStatus(t, repo, accepted.AnalysisID)
	assert.Equal(t, entity.AnalysisFailed, final.Status)
	assert.NotEmpty(t, final.ErrorMessage)
	assert.Equal(t, 0, llm.callCount(), "sin texto extraíble no se llama a la IA")
}

func TestAnalyze_FalloDeIA_TerminaEnFailed(t *testing.T) {
	repo := newFakeAnalysisRepo()
	llm := &fakeLLM{err: errors.New("cuota agotada")}
	uc := newAnalyzeUC(repo, &fakeExtractor{text: "texto válido"}, llm)

	accepted, err := uc.Submit(testUser, "doc.pdf", "application/pdf", []byte("%PDF-"))
	require.NoError(t, err)

	final := waitStatus(t, repo, accepted.AnalysisID)
	assert.Equal(t, entity.AnalysisFailed, final.Status)
	assert.Contains(t, final.ErrorMessage, "cuota agotada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests consulta de resultados
// ──────────────────────────────────────────────────────────────────────────────

func TestAnalyze_GetResult_SoloElDueno(t *testing.T) {
	repo := newFakeAnalysisRepo()
	uc := newAnalyzeUC(repo, &fakeExtractor{text: "x"}, &fakeLLM{summary: &dto.DocumentSummaryDTO{}})

	accepted, err := uc.Submit(testUser, "doc.pdf", "application/pdf", []byte("%PDF-"))
	require.NoError(t, err)
	waitStatus(t, repo, accepted.AnalysisID)

	_, err = uc.GetResult("otro-usuario", accepted.AnalysisID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el análisis pertenece a su dueño")

	out, err := uc.GetResult(testUser, accepted.AnalysisID)
	require.NoError(t, err)
	assert.Equal(t, accepted.AnalysisID, out.ID)
}

func TestAnalyze_GetResult_Inexistente(t *testing.T) {
	uc := newAnalyzeUC(newFakeAnalysisRepo(), &fakeExtractor{}, &fakeLLM{})

	out, err := uc.GetResult(testUser, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, out)
}
