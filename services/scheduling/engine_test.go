package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	appointmentRepo "medibook/database/repository/appointment"
	providerRepo "medibook/database/repository/provider"
	"medibook/models"
)

// memProviders is a minimal in-memory ProviderRepository.
type memProviders struct {
	byID map[string]*models.Provider
}

func (m *memProviders) GetByID(id string) (*models.Provider, error) {
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, providerRepo.ErrNotFound
}

func (m *memProviders) GetByEmail(string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (m *memProviders) GetByTokenHash(string) (*models.Provider, error) {
	return nil, providerRepo.ErrNotFound
}

func (m *memProviders) GetAll() ([]models.Provider, error) {
	var out []models.Provider
	for _, p := range m.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProviders) Create(p *models.Provider) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memProviders) UpdateWithDocument(string, bson.M) error { return nil }

func (m *memProviders) SetAvailability(id string, weekly models.WeeklyAvailability) error {
	p, ok := m.byID[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Availability = weekly
	return nil
}

// memAppointments mimics the repository's atomicity guarantees with a
// mutex: one winner per held (provider, date, time) triple, conditional
// status updates.
type memAppointments struct {
	mu    sync.Mutex
	byID  map[string]*models.Appointment
	order []string
}

func newMemAppointments() *memAppointments {
	return &memAppointments{byID: make(map[string]*models.Appointment)}
}

func (m *memAppointments) slotKey(a *models.Appointment) string {
	return a.ProviderID + "|" + a.SlotDate + "|" + a.SlotTime
}

func (m *memAppointments) Insert(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appt.SlotHeld {
		for _, other := range m.byID {
			if other.SlotHeld && m.slotKey(other) == m.slotKey(appt) {
				return appointmentRepo.ErrSlotTaken
			}
		}
	}
	cp := *appt
	m.byID[appt.ID] = &cp
	m.order = append(m.order, appt.ID)
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, appointmentRepo.ErrNotFound
}

func (m *memAppointments) HeldTimes(_ context.Context, providerID, fromDate, toDate string) (models.BookedSlotIndex, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := make(models.BookedSlotIndex)
	for _, a := range m.byID {
		if a.ProviderID == providerID && a.SlotHeld && a.SlotDate >= fromDate && a.SlotDate <= toDate {
			idx[a.SlotDate] = append(idx[a.SlotDate], a.SlotTime)
		}
	}
	return idx, nil
}

func (m *memAppointments) MarkCancelled(_ context.Context, id, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if a.Status != models.StatusBooked {
		return appointmentRepo.ErrNotBooked
	}
	a.Status = models.StatusCancelled
	a.CancellationReason = reason
	a.SlotHeld = false
	return nil
}

func (m *memAppointments) MarkCompleted(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if a.Status != models.StatusBooked {
		return appointmentRepo.ErrNotBooked
	}
	a.Status = models.StatusCompleted
	return nil
}

func (m *memAppointments) MarkPaid(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	a.Paid = true
	return nil
}

func (m *memAppointments) latestFirst(match func(*models.Appointment) bool) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for i := len(m.order) - 1; i >= 0; i-- {
		if a := m.byID[m.order[i]]; match(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (m *memAppointments) ByProvider(_ context.Context, providerID string) ([]models.Appointment, error) {
	return m.latestFirst(func(a *models.Appointment) bool { return a.ProviderID == providerID }), nil
}

func (m *memAppointments) ByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	return m.latestFirst(func(a *models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (m *memAppointments) All(_ context.Context) ([]models.Appointment, error) {
	return m.latestFirst(func(*models.Appointment) bool { return true }), nil
}

// recordingNotifier captures queued notices; failures are injectable.
type recordingNotifier struct {
	mu        sync.Mutex
	notices   []models.CancellationNotice
	reminders []models.ReminderPayload
	fail      error
}

func (n *recordingNotifier) SendCancellationNotice(_ context.Context, notice models.CancellationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.notices = append(n.notices, notice)
	return nil
}

func (n *recordingNotifier) ScheduleReminder(_ context.Context, payload models.ReminderPayload, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.reminders = append(n.reminders, payload)
	return nil
}

func testProvider() *models.Provider {
	return &models.Provider{
		ID:        "prov-1",
		Name:      "Dr. Achieng",
		Available: true,
		Availability: models.WeeklyAvailability{
			"Monday":  {From: "09:00", To: "17:00"},
			"Tuesday": {From: "09:00", To: "12:00"},
		},
	}
}

func newTestEngine(prov *models.Provider) (*DefaultSchedulingEngine, *memAppointments, *recordingNotifier) {
	appts := newMemAppointments()
	notifier := &recordingNotifier{}
	engine := &DefaultSchedulingEngine{
		Providers:      &memProviders{byID: map[string]*models.Provider{prov.ID: prov}},
		Appointments:   appts,
		Notifier:       notifier,
		CommissionRate: 0.10,
		Slots:          SlotOptions{Now: fixedNow},
	}
	return engine, appts, notifier
}

func TestBookStampsCommissionAndHold(t *testing.T) {
	engine, _, _ := newTestEngine(testProvider())

	appt, err := engine.Book(context.Background(), BookingRequest{
		ProviderID: "prov-1",
		PatientID:  "pat-1",
		SlotDate:   "2026-03-02",
		SlotTime:   "09:30",
		Amount:     100,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusBooked, appt.Status)
	assert.True(t, appt.SlotHeld)
	assert.Equal(t, 10.0, appt.CommissionAmount)
	assert.NotEmpty(t, appt.ID)
}

func TestBookRejectsSlotOutsideWindow(t *testing.T) {
	engine, _, _ := newTestEngine(testProvider())

	cases := map[string]BookingRequest{
		"before window": {ProviderID: "prov-1", PatientID: "pat-1", SlotDate: "2026-03-02", SlotTime: "08:30", Amount: 100},
		"at window end": {ProviderID: "prov-1", PatientID: "pat-1", SlotDate: "2026-03-03", SlotTime: "12:00", Amount: 100},
		"closed day":    {ProviderID: "prov-1", PatientID: "pat-1", SlotDate: "2026-03-04", SlotTime: "10:00", Amount: 100},
		"same day":      {ProviderID: "prov-1", PatientID: "pat-1", SlotDate: "2026-03-01", SlotTime: "10:00", Amount: 100},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Book(context.Background(), req)
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		})
	}
}

func TestBookRejectsMalformedRequest(t *testing.T) {
	engine, _, _ := newTestEngine(testProvider())

	cases := map[string]BookingRequest{
		"bad date":   {ProviderID: "prov-1", PatientID: "pat-1", SlotDate: "02-03-2026", SlotTime: "09:30", Amount: 100},
		"bad time":   {ProviderID: "prov-1", PatientID: "pat-1", SlotDate: "2026-03-02", SlotTime: "9.30am", Amount: 100},
		"bad amount": {ProviderID: "prov-1", PatientID: "pat-1", SlotDate: "2026-03-02", SlotTime: "09:30", Amount: 0},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Book(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestBookUnavailableProvider(t *testing.T) {
	prov := testProvider()
	prov.Available = false
	engine, _, _ := newTestEngine(prov)

	_, err := engine.Book(context.Background(), BookingRequest{
		ProviderID: "prov-1", PatientID: "pat-1",
		SlotDate: "2026-03-02", SlotTime: "09:30", Amount: 100,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookUnknownProvider(t *testing.T) {
	engine, _, _ := newTestEngine(testProvider())

	_, err := engine.Book(context.Background(), BookingRequest{
		ProviderID: "ghost", PatientID: "pat-1",
		SlotDate: "2026-03-02", SlotTime: "09:30", Amount: 100,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestBookConcurrentSameSlot races many reservations for one triple:
// exactly one wins, everyone else gets ErrSlotAlreadyBooked.
func TestBookConcurrentSameSlot(t *testing.T) {
	engine, appts, _ := newTestEngine(testProvider())

	const attempts = 32
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Book(context.Background(), BookingRequest{
				ProviderID: "prov-1",
				PatientID:  "pat-1",
				SlotDate:   "2026-03-02",
				SlotTime:   "10:00",
				Amount:     100,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrSlotAlreadyBooked):
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, losses)

	held, err := appts.HeldTimes(context.Background(), "prov-1", "2026-03-02", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, held["2026-03-02"])
}

func TestListSlotsReflectsBookings(t *testing.T) {
	engine, _, _ := newTestEngine(testProvider())
	ctx := context.Background()

	_, err := engine.Book(ctx, BookingRequest{
		ProviderID: "prov-1", PatientID: "pat-1",
		SlotDate: "2026-03-02", SlotTime: "09:00", Amount: 100,
	})
	require.NoError(t, err)

	days, err := engine.ListSlots(ctx, "prov-1", 1)
	require.NoError(t, err)
	require.Len(t, days, 1)
	for _, slot := range days[0].Slots {
		assert.NotEqual(t, "09:00", slot.Time, "booked slot must not be listed")
	}
}

func TestListSlotsUnavailableProvider(t *testing.T) {
	prov := testProvider()
	prov.Available = false
	engine, _, _ := newTestEngine(prov)

	days, err := engine.ListSlots(context.Background(), "prov-1", 2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	for _, day := range days {
		assert.False(t, day.Available)
		assert.Empty(t, day.Slots)
	}
}

func TestListSlotsUnknownProvider(t *testing.T) {
	engine, _, _ := newTestEngine(testProvider())
	_, err := engine.ListSlots(context.Background(), "ghost", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

// A freed slot is immediately re-bookable by someone else.
func TestCancelThenRebook(t *testing.T) {
	engine, _, _ := newTestEngine(testProvider())
	ctx := context.Background()

	first, err := engine.Book(ctx, BookingRequest{
		ProviderID: "prov-1", PatientID: "pat-1",
		SlotDate: "2026-03-02", SlotTime: "11:00", Amount: 100,
	})
	require.NoError(t, err)

	_, err = engine.Book(ctx, BookingRequest{
		ProviderID: "prov-1", PatientID: "pat-2",
		SlotDate: "2026-03-02", SlotTime: "11:00", Amount: 100,
	})
	require.ErrorIs(t, err, ErrSlotAlreadyBooked)

	require.NoError(t, engine.Cancel(ctx, first.ID, models.Actor{ID: "prov-1", Role: models.RoleProvider}, "provider sick"))

	second, err := engine.Book(ctx, BookingRequest{
		ProviderID: "prov-1", PatientID: "pat-2",
		SlotDate: "2026-03-02", SlotTime: "11:00", Amount: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "pat-2", second.PatientID)
}
