package scan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmic-portals/portals-api/internal/application/dto"
	"github.com/cosmic-portals/portals-api/internal/application/ports"
	"github.com/cosmic-portals/portals-api/internal/application/scan"
	"github.com/cosmic-portals/portals-api/internal/domain/entity"
	"github.com/cosmic-portals/portals-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeDeviceRepo struct {
	devices    map[string]*entity.NFCDevice // device_id público -> device
	increments int
	incErr     error
}

func (f *fakeDeviceRepo) Create(d *entity.NFCDevice) error          { return nil }
func (f *fakeDeviceRepo) GetByID(string) (*entity.NFCDevice, error) { return nil, nil }
func (f *fakeDeviceRepo) GetByDeviceID(deviceID string) (*entity.NFCDevice, error) {
	return f.devices[deviceID], nil
}
func (f *fakeDeviceRepo) ListByOrganization(string, int, int) ([]*entity.NFCDevice, error) {
	return nil, nil
}
func (f *fakeDeviceRepo) Delete(_, _ string) error { return nil }
func (f *fakeDeviceRepo) IncrementScanCount(_ context.Context, _ string) error {
	if f.incErr != nil {
		return f.incErr
	}
	f.increments++
	return nil
}

type fakeScanRepo struct {
	scans     []*entity.NFCScan
	createErr error
}

func (f *fakeScanRepo) Create(_ context.Context, s *entity.NFCScan) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.scans = append(f.scans, s)
	return nil
}
func (f *fakeScanRepo) ListByDevice(_ context.Context, _ string, _, _ int) ([]*entity.NFCScan, error) {
	return f.scans, nil
}

type fakeGeoIP struct {
	loc *ports.GeoLocation
	err error
}

func (f *fakeGeoIP) Lookup(_ context.Context, _ string) (*ports.GeoLocation, error) {
	return f.loc, f.err
}

func testDevice() *entity.NFCDevice {
	return &entity.NFCDevice{
		ID:             "11111111-1111-1111-1111-111111111111",
		DeviceID:       "ptt_abc",
		OrganizationID: "22222222-2222-2222-2222-222222222222",
		DeviceType:     entity.DeviceBusinessCard,
		Status:         entity.DeviceActive,
		Metadata:       entity.DeviceMetadata{Name: "Tarjeta de Laura", ContactEmail: "laura@acme.co"},
		CreatedAt:      time.Now(),
	}
}

func testRecorder(devices *fakeDeviceRepo, scans *fakeScanRepo, geo ports.GeoIPService) *scan.Recorder {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return scan.NewRecorder(devices, scans, geo, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Flujo feliz: el escaneo queda persistido, el contador se incrementa y el
// contenido de bienvenida se sirve con scan_recorded=true.
func TestRecord_EscaneoExitoso(t *testing.T) {
	device := testDevice()
	devices := &fakeDeviceRepo{devices: map[string]*entity.NFCDevice{device.DeviceID: device}}
	scans := &fakeScanRepo{}
	rec := testRecorder(devices, scans, nil)

	out, err := rec.Record(context.Background(), "ptt_abc", dto.ScanVisitMetadata{
		ScanType:  entity.ScanNFCTap,
		IPAddress: "203.0.113.9",
		UserAgent: "Mozilla/5.0",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, out.ScanRecorded, "el escaneo debe quedar registrado")
	assert.Equal(t, "Tarjeta de Laura", out.Name)
	assert.Equal(t, "laura@acme.co", out.ContactEmail)
	require.Len(t, scans.scans, 1)
	assert.Equal(t, device.ID, scans.scans[0].DeviceID, "el escaneo se atribuye al ID interno")
	assert.Equal(t, device.OrganizationID, scans.scans[0].OrganizationID)
	assert.Equal(t, 1, devices.increments, "el contador debe incrementarse una vez")
}

// Dispositivo desconocido: (nil, nil), el handler responde 404.
func TestRecord_DispositivoDesconocido(t *testing.T) {
	devices := &fakeDeviceRepo{devices: map[string]*entity.NFCDevice{}}
	rec := testRecorder(devices, &fakeScanRepo{}, nil)

	out, err := rec.Record(context.Background(), "ptt_nope", dto.ScanVisitMetadata{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

// Dispositivo inactivo se comporta como inexistente.
func TestRecord_DispositivoInactivo(t *testing.T) {
	device := testDevice()
	device.Status = entity.DeviceInactive
	devices := &fakeDeviceRepo{devices: map[string]*entity.NFCDevice{device.DeviceID: device}}
	rec := testRecorder(devices, &fakeScanRepo{}, nil)

	out, err := rec.Record(context.Background(), device.DeviceID, dto.ScanVisitMetadata{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

// Contrato central: si la persistencia del escaneo falla, el contenido de
// bienvenida se sirve igual con scan_recorded=false.
func TestRecord_FalloDePersistencia_SirveContenido(t *testing.T) {
	device := testDevice()
	devices := &fakeDeviceRepo{devices: map[string]*entity.NFCDevice{device.DeviceID: device}}
	scans := &fakeScanRepo{createErr: errors.New("db caída")}
	rec := testRecorder(devices, scans, nil)

	out, err := rec.Record(context.Background(), device.DeviceID, dto.ScanVisitMetadata{})
	require.NoError(t, err, "el fallo de persistencia nunca se propaga al visitante")
	require.NotNil(t, out)

	assert.False(t, out.ScanRecorded)
	assert.Equal(t, "Tarjeta de Laura", out.Name, "el contenido se sirve aunque el registro falle")
	assert.Equal(t, 0, devices.increments, "sin escaneo persistido no se incrementa el contador")
}

// Un fallo del incremento atómico tampoco rompe la visita: el escaneo ya
// quedó en el log append-only.
func TestRecord_FalloDelContador_NoRompeVisita(t *testing.T) {
	device := testDevice()
	devices := &fakeDeviceRepo{
		devices: map[string]*entity.NFCDevice{device.DeviceID: device},
		incErr:  errors.New("timeout"),
	}
	scans := &fakeScanRepo{}
	rec := testRecorder(devices, scans, nil)

	out, err := rec.Record(context.Background(), device.DeviceID, dto.ScanVisitMetadata{})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, out.ScanRecorded, "el escaneo sí quedó persistido")
	assert.Len(t, scans.scans, 1)
}

// Tipo de escaneo desconocido se normaliza a nfc_tap.
func TestRecord_TipoDesconocidoNormalizaANFCTap(t *testing.T) {
	device := testDevice()
	devices := &fakeDeviceRepo{devices: map[string]*entity.NFCDevice{device.DeviceID: device}}
	scans := &fakeScanRepo{}
	rec := testRecorder(devices, scans, nil)

	_, err := rec.Record(context.Background(), device.DeviceID, dto.ScanVisitMetadata{ScanType: "telepatía"})
	require.NoError(t, err)
	require.Len(t, scans.scans, 1)
	assert.Equal(t, entity.ScanNFCTap, scans.scans[0].ScanType)
}

// QR se registra como qr_scan y los UTM quedan en el evento.
func TestRecord_QRConUTM(t *testing.T) {
	device := testDevice()
	devices := &fakeDeviceRepo{devices: map[string]*entity.NFCDevice{device.DeviceID: device}}
	scans := &fakeScanRepo{}
	rec := testRecorder(devices, scans, nil)

	_, err := rec.Record(context.Background(), device.DeviceID, dto.ScanVisitMetadata{
		ScanType:    entity.ScanQRScan,
		UTMSource:   "newsletter",
		UTMCampaign: "lanzamiento",
	})
	require.NoError(t, err)
	require.Len(t, scans.scans, 1)
	assert.Equal(t, entity.ScanQRScan, scans.scans[0].ScanType)
	assert.Equal(t, "newsletter", scans.scans[0].UTMParams.Source)
	assert.Equal(t, "lanzamiento", scans.scans[0].UTMParams.Campaign)
}

// Enriquecimiento GeoIP best-effort: si responde, ciudad y país van en el
// evento; si falla, el escaneo se registra sin ellos.
func TestRecord_EnriquecimientoGeoIP(t *testing.T) {
	lat, lng := 4.711, -74.0721

	t.Run("lookup exitoso agrega ciudad y país", func(t *testing.T) {
		device := testDevice()
		devices := &fakeDeviceRepo{devices: map[string]*entity.NFCDevice{device.DeviceID: device}}
		scans := &fakeScanRepo{}
		geo := &fakeGeoIP{loc: &ports.GeoLocation{City: "Bogotá", Country: "CO"}}
		rec := testRecorder(devices, scans, geo)

		_, err := rec.Record(context.Background(), device.DeviceID, dto.ScanVisitMetadata{
			IPAddress: "203.0.113.9",
			Latitude:  &lat,
			Longitude: &lng,
		})
		require.NoError(t, err)
		require.Len(t, scans.scans, 1)
		loc := scans.scans[0].Location
		require.NotNil(t, loc)
		assert.Equal(t, "Bogotá", loc.City)
		assert.Equal(t, "CO", loc.Country)
		assert.Equal(t, lat, loc.Latitude)
	})

	t.Run("lookup fallido no bloquea el registro", func(t *testing.T) {
		device := testDevice()
		devices := &fakeDeviceRepo{devices: map[string]*entity.NFCDevice{device.DeviceID: device}}
		scans := &fakeScanRepo{}
		geo := &fakeGeoIP{err: errors.New("timeout")}
		rec := testRecorder(devices, scans, geo)

		out, err := rec.Record(context.Background(), device.DeviceID, dto.ScanVisitMetadata{IPAddress: "203.0.113.9"})
		require.NoError(t, err)
		assert.True(t, out.ScanRecorded)
		require.Len(t, scans.scans, 1)
		assert.Nil(t, scans.scans[0].Location, "sin coordenadas ni geo, Location queda nil")
	})
}
