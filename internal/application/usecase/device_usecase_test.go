package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/usecase"
	"github.com/cosmic-portals/portals-api/internal/domain"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/internal/domain/repository"
)

// fakeDeviceRepo implementación en memoria de DeviceRepository.
type fakeDeviceRepo struct {
	byID map[string]*entity.NFCDevice
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{byID: map[string]*entity.NFCDevice{}}
}

func (f *fakeDeviceRepo) Create(d *entity.NFCDevice) error {
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}
func (f *fakeDeviceRepo) GetByID(id string) (*entity.NFCDevice, error) {
	if d, ok := f.byID[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeDeviceRepo) GetByDeviceID(deviceID string) (*entity.NFCDevice, error) {
	for _, d := range f.byID {
		if d.DeviceID == deviceID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeDeviceRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.NFCDevice, error) {
	var out []*entity.NFCDevice
	for _, d := range f.byID {
		if d.OrganizationID == orgID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeDeviceRepo) Delete(id, orgID string) error {
	if d, ok := f.byID[id]; ok && d.OrganizationID == orgID {
		delete(f.byID, id)
	}
	return nil
}
func (f *fakeDeviceRepo) IncrementScanCount(_ context.Context, id string) error {
	if d, ok := f.byID[id]; ok {
		d.ScanCount++
	}
	return nil
}

// fakeOrgRepo implementación mínima de OrganizationRepository.
type fakeOrgRepo struct {
	orgs map[string]*entity.Organization
}

func newFakeOrgRepo() *fakeOrgRepo { return &fakeOrgRepo{orgs: map[string]*entity.Organization{}} }

func (f *fakeOrgRepo) Create(o *entity.Organization) error {
	cp := *o
	f.orgs[o.ID] = &cp
	return nil
}
func (f *fakeOrgRepo) GetByID(id string) (*entity.Organization, error) {
	if o, ok := f.orgs[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeOrgRepo) GetBySlug(slug string) (*entity.Organization, error) {
	for _, o := range f.orgs {
		if o.Slug == slug {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeOrgRepo) Update(o *entity.Organization) error {
	cp := *o
	f.orgs[o.ID] = &cp
	return nil
}
func (f *fakeOrgRepo) List(limit, offset int) ([]*entity.Organization, error) {
	var out []*entity.Organization
	for _, o := range f.orgs {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

// fakeAnalyticsRepo devuelve agregados fijos.
type fakeAnalyticsRepo struct {
	deviceStats *repository.ScanStatsResult
	daily       []repository.DailyScanCount
}

func (f *fakeAnalyticsRepo) GetDeviceScanStats(_ context.Context, _ string) (*repository.ScanStatsResult, error) {
	if f.deviceStats != nil {
		return f.deviceStats, nil
	}
	return &repository.ScanStatsResult{CountByType: map[string]int64{}}, nil
}
func (f *fakeAnalyticsRepo) GetOrganizationScanStats(_ context.Context, _ string) (*repository.ScanStatsResult, error) {
	return f.GetDeviceScanStats(nil, "")
}
func (f *fakeAnalyticsRepo) GetScansPerDay(_ context.Context, _ string, _ time.Time) ([]repository.DailyScanCount, error) {
	return f.daily, nil
}
func (f *fakeAnalyticsRepo) GetOrganizationScansPerDay(_ context.Context, _ string, _ time.Time) ([]repository.DailyScanCount, error) {
	return f.daily, nil
}
func (f *fakeAnalyticsRepo) GetOrganizationRollup(_ context.Context, _ string) (int64, int64, int64, int64, error) {
	return 3, 120, 2, 5, nil
}
func (f *fakeAnalyticsRepo) GetPlatformStats(_ context.Context) (*repository.PlatformStatsResult, error) {
	return &repository.PlatformStatsResult{Organizations: 1}, nil
}
func (f *fakeAnalyticsRepo) GetRecentActivity(_ context.Context, _ int) ([]repository.ActivityEntry, error) {
	return nil, nil
}

// fakeScanRepo log de escaneos en memoria.
type fakeScanRepo struct {
	scans []*entity.NFCScan
}

func (f *fakeScanRepo) Create(_ context.Context, s *entity.NFCScan) error {
	cp := *s
	f.scans = append(f.scans, &cp)
	return nil
}
func (f *fakeScanRepo) ListByDevice(_ context.Context, deviceID string, limit, offset int) ([]*entity.NFCScan, error) {
	var out []*entity.NFCScan
	for _, s := range f.scans {
		if s.DeviceID == deviceID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newDeviceUC(devices *fakeDeviceRepo, analytics *fakeAnalyticsRepo) *usecase.DeviceUseCase {
	return usecase.NewDeviceUseCase(devices, newFakeOrgRepo(), &fakeScanRepo{}, analytics, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests registro
// ──────────────────────────────────────────────────────────────────────────────

// Sin device_id del cliente, el servidor genera un token ptt_<uuid>.
func TestDevice_Register_GeneraTokenServidor(t *testing.T) {
	uc := newDeviceUC(newFakeDeviceRepo(), &fakeAnalyticsRepo{})

	out, err := uc.Register(orgA, dto.RegisterDeviceRequest{
		DeviceType: entity.DeviceBusinessCard,
		Name:       "Tarjeta demo",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.DeviceID, "ptt_"), "el token generado lleva el prefijo ptt_")
	assert.Greater(t, len(out.DeviceID), len("ptt_"), "el token lleva un uuid tras el prefijo")
	assert.Equal(t, entity.DeviceActive, out.Status)
}

// Con serial del hardware (Web NFC), se respeta el device_id del cliente.
func TestDevice_Register_RespetaSerialDelCliente(t *testing.T) {
	uc := newDeviceUC(newFakeDeviceRepo(), &fakeAnalyticsRepo{})

	out, err := uc.Register(orgA, dto.RegisterDeviceRequest{
		DeviceID:   "04:A3:22:B9:11:00:01",
		DeviceType: entity.DeviceEventBadge,
	})
	require.NoError(t, err)
	assert.Equal(t, "04:A3:22:B9:11:00:01", out.DeviceID)
}

func TestDevice_Register_DeviceIDDuplicado(t *testing.T) {
	repo := newFakeDeviceRepo()
	uc := newDeviceUC(repo, &fakeAnalyticsRepo{})

	_, err := uc.Register(orgA, dto.RegisterDeviceRequest{DeviceID: "serial-1", DeviceType: entity.DeviceKeychain})
	require.NoError(t, err)

	_, err = uc.Register(orgB, dto.RegisterDeviceRequest{DeviceID: "serial-1", DeviceType: entity.DeviceKeychain})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el token público es único en toda la plataforma")
}

func TestDevice_Register_TipoInvalido(t *testing.T) {
	uc := newDeviceUC(newFakeDeviceRepo(), &fakeAnalyticsRepo{})

	_, err := uc.Register(orgA, dto.RegisterDeviceRequest{DeviceType: "drone"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests aislamiento de tenant
// ──────────────────────────────────────────────────────────────────────────────

func TestDevice_GetByID_OtraOrganizacion(t *testing.T) {
	repo := newFakeDeviceRepo()
	uc := newDeviceUC(repo, &fakeAnalyticsRepo{})

	created, err := uc.Register(orgA, dto.RegisterDeviceRequest{DeviceType: entity.DeviceSignage})
	require.NoError(t, err)

	out, err := uc.GetByID(orgB, created.ID)
	require.NoError(t, err)
	assert.Nil(t, out, "el dispositivo de otra organización se comporta como inexistente")
}

func TestDevice_Delete_OtraOrganizacion(t *testing.T) {
	repo := newFakeDeviceRepo()
	uc := newDeviceUC(repo, &fakeAnalyticsRepo{})

	created, err := uc.Register(orgA, dto.RegisterDeviceRequest{DeviceType: entity.DeviceSignage})
	require.NoError(t, err)

	err = uc.Delete(orgB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El dispositivo sigue existiendo para su dueño
	still, err := uc.GetByID(orgA, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests analítica
// ──────────────────────────────────────────────────────────────────────────────

func TestDevice_Analytics_FormateaSerieDiaria(t *testing.T) {
	repo := newFakeDeviceRepo()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	analytics := &fakeAnalyticsRepo{
		deviceStats: &repository.ScanStatsResult{
			TotalScans: 42,
			ActiveDays: 2,
			CountByType: map[string]int64{
				entity.ScanNFCTap: 40,
				entity.ScanQRScan: 2,
			},
		},
		daily: []repository.DailyScanCount{
			{Day: day, Count: 30},
			{Day: day.AddDate(0, 0, 1), Count: 12},
		},
	}
	uc := newDeviceUC(repo, analytics)

	created, err := uc.Register(orgA, dto.RegisterDeviceRequest{DeviceType: entity.DeviceTableTent})
	require.NoError(t, err)

	out, err := uc.Analytics(context.Background(), orgA, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, int64(42), out.TotalScans)
	assert.Equal(t, int64(2), out.ActiveDays)
	assert.Equal(t, int64(40), out.CountByType[entity.ScanNFCTap])
	require.Len(t, out.ScansPerDay, 2)
	assert.Equal(t, "2026-08-30", out.ScansPerDay[0].Day, "los buckets diarios se formatean como 2006-01-02")
	assert.Equal(t, int64(30), out.ScansPerDay[0].Count)
}

func TestDevice_Analytics_OtraOrganizacion(t *testing.T) {
	repo := newFakeDeviceRepo()
	uc := newDeviceUC(repo, &fakeAnalyticsRepo{})

	created, err := uc.Register(orgA, dto.RegisterDeviceRequest{DeviceType: entity.DeviceTableTent})
	require.NoError(t, err)

	out, err := uc.Analytics(context.Background(), orgB, created.ID)
	require.NoError(t, err)
	assert.Nil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests historial de escaneos
// ──────────────────────────────────────────────────────────────────────────────

func TestDevice_Scans_ListaEscaneosDelDispositivo(t *testing.T) {
	devices := newFakeDeviceRepo()
	scans := &fakeScanRepo{}
	uc := usecase.NewDeviceUseCase(devices, newFakeOrgRepo(), scans, &fakeAnalyticsRepo{}, nil)

	created, err := uc.Register(orgA, dto.RegisterDeviceRequest{DeviceType: entity.DeviceBusinessCard})
	require.NoError(t, err)

	_ = scans.Create(context.Background(), &entity.NFCScan{
		ID: "s1", OrganizationID: orgA, DeviceID: created.ID,
		ScanType: entity.ScanQRScan, IPAddress: "181.49.10.2",
		UTMParams: entity.UTMParams{Source: "afiche"},
		Location:  &entity.Location{City: "Bogotá", Country: "CO"},
		CreatedAt: time.Now(),
	})
	_ = scans.Create(context.Background(), &entity.NFCScan{
		ID: "s2", OrganizationID: orgA, DeviceID: "otro-dispositivo",
		ScanType: entity.ScanNFCTap, CreatedAt: time.Now(),
	})

	out, err := uc.Scans(context.Background(), orgA, created.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, created.DeviceID, out.DeviceID, "la respuesta expone el token público, no el ID interno")
	require.Len(t, out.Items, 1, "solo los escaneos del dispositivo consultado")
	assert.Equal(t, entity.ScanQRScan, out.Items[0].ScanType)
	assert.Equal(t, "afiche", out.Items[0].UTMSource)
	assert.Equal(t, "Bogotá", out.Items[0].City)
}

func TestDevice_Scans_OtraOrganizacion(t *testing.T) {
	devices := newFakeDeviceRepo()
	uc := newDeviceUC(devices, &fakeAnalyticsRepo{})

	created, err := uc.Register(orgA, dto.RegisterDeviceRequest{DeviceType: entity.DeviceKeychain})
	require.NoError(t, err)

	out, err := uc.Scans(context.Background(), orgB, created.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Nil(t, out, "el dispositivo de otra organización se comporta como inexistente")
}
