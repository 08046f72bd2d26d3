package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/mpcbarbosa/SeniorCare/internal/model"
	"github.com/mpcbarbosa/SeniorCare/internal/repository"
	pkgerrors "github.com/mpcbarbosa/SeniorCare/pkg/errors"
)

// mockRepos exposes the typed mocks behind a mock *repository.Repository.
type mockRepos struct {
	user         *mockUserRepo
	caregiver    *mockCaregiverRepo
	medication   *mockMedicationRepo
	intake       *mockIntakeLogRepo
	contact      *mockContactRepo
	activity     *mockActivityRepo
	alert        *mockAlertRepo
	mood         *mockMoodLogRepo
	chat         *mockChatMessageRepo
	appointment  *mockAppointmentRepo
	health       *mockHealthReadingRepo
	notification *mockNotificationLogRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:         newMockUserRepo(),
		caregiver:    newMockCaregiverRepo(),
		medication:   newMockMedicationRepo(),
		intake:       newMockIntakeLogRepo(),
		contact:      newMockContactRepo(),
		activity:     newMockActivityRepo(),
		alert:        newMockAlertRepo(),
		mood:         newMockMoodLogRepo(),
		chat:         newMockChatMessageRepo(),
		appointment:  newMockAppointmentRepo(),
		health:       newMockHealthReadingRepo(),
		notification: newMockNotificationLogRepo(),
	}
	// Users are resolved when caregiver links are listed.
	m.caregiver.users = m.user.users
	repo := &repository.Repository{
		User:          m.user,
		Caregiver:     m.caregiver,
		Medication:    m.medication,
		IntakeLog:     m.intake,
		Contact:       m.contact,
		Activity:      m.activity,
		Alert:         m.alert,
		Mood:          m.mood,
		Chat:          m.chat,
		Appointment:   m.appointment,
		HealthReading: m.health,
		Notification:  m.notification,
	}
	return repo, m
}

var mockSeq int

func nextID(prefix string) string {
	mockSeq++
	return fmt.Sprintf("%s-%d", prefix, mockSeq)
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Phone == user.Phone {
			return fmt.Errorf("duplicate phone %s", user.Phone)
		}
	}
	if user.UserID == "" {
		user.UserID = nextID("user")
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) TouchLastActive(_ context.Context, id string, at time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastActiveAt = &at
	return nil
}

// ── Mock CaregiverRepository ──

type mockCaregiverRepo struct {
	caregivers map[string]*model.Caregiver
	links      []model.CaregiverUser
	users      map[string]*model.User
}

func newMockCaregiverRepo() *mockCaregiverRepo {
	return &mockCaregiverRepo{caregivers: make(map[string]*model.Caregiver)}
}

func (m *mockCaregiverRepo) Create(_ context.Context, cg *model.Caregiver) error {
	for _, c := range m.caregivers {
		if c.Email == cg.Email {
			return fmt.Errorf("duplicate email %s", cg.Email)
		}
	}
	if cg.CaregiverID == "" {
		cg.CaregiverID = nextID("cg")
	}
	m.caregivers[cg.CaregiverID] = cg
	return nil
}

func (m *mockCaregiverRepo) GetByID(_ context.Context, id string) (*model.Caregiver, error) {
	if c, ok := m.caregivers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCaregiverRepo) GetByEmail(_ context.Context, email string) (*model.Caregiver, error) {
	for _, c := range m.caregivers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCaregiverRepo) CreateLink(_ context.Context, link *model.CaregiverUser) error {
	if link.CaregiverUserID == "" {
		link.CaregiverUserID = nextID("link")
	}
	m.links = append(m.links, *link)
	return nil
}

func (m *mockCaregiverRepo) GetLink(_ context.Context, caregiverID, userID string) (*model.CaregiverUser, error) {
	for i := range m.links {
		if m.links[i].CaregiverID == caregiverID && m.links[i].UserID == userID {
			link := m.links[i]
			return &link, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCaregiverRepo) ListLinksByCaregiver(_ context.Context, caregiverID string) ([]model.CaregiverUser, error) {
	var result []model.CaregiverUser
	for _, l := range m.links {
		if l.CaregiverID == caregiverID {
			l.User = m.users[l.UserID]
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockCaregiverRepo) ListLinksByUser(_ context.Context, userID string) ([]model.CaregiverUser, error) {
	var result []model.CaregiverUser
	for _, l := range m.links {
		if l.UserID == userID {
			l.Caregiver = m.caregivers[l.CaregiverID]
			result = append(result, l)
		}
	}
	return result, nil
}

// ── Mock MedicationRepository ──

type mockMedicationRepo struct {
	meds []*model.Medication
}

func newMockMedicationRepo() *mockMedicationRepo {
	return &mockMedicationRepo{}
}

func (m *mockMedicationRepo) Create(_ context.Context, med *model.Medication) error {
	if med.MedicationID == "" {
		med.MedicationID = nextID("med")
	}
	if med.Version == 0 {
		med.Version = 1
	}
	for i := range med.Schedules {
		if med.Schedules[i].ScheduleID == "" {
			med.Schedules[i].ScheduleID = nextID("sched")
		}
		med.Schedules[i].MedicationID = med.MedicationID
	}
	m.meds = append(m.meds, med)
	return nil
}

func (m *mockMedicationRepo) find(id string) *model.Medication {
	for _, med := range m.meds {
		if med.MedicationID == id {
			return med
		}
	}
	return nil
}

func (m *mockMedicationRepo) GetByID(_ context.Context, id string) (*model.Medication, error) {
	med := m.find(id)
	if med == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return copyMedication(med), nil
}

func (m *mockMedicationRepo) ListByUser(_ context.Context, userID string, activeOnly bool) ([]model.Medication, error) {
	var result []model.Medication
	for _, med := range m.meds {
		if med.UserID != userID || (activeOnly && !med.IsActive) {
			continue
		}
		result = append(result, *copyMedication(med))
	}
	return result, nil
}

func (m *mockMedicationRepo) Update(_ context.Context, med *model.Medication) error {
	stored := m.find(med.MedicationID)
	if stored == nil || stored.Version != med.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Name = med.Name
	stored.Dosage = med.Dosage
	stored.Instructions = med.Instructions
	stored.Icon = med.Icon
	stored.IsActive = med.IsActive
	stored.Version++
	med.Version = stored.Version
	return nil
}

func (m *mockMedicationRepo) SyncSchedules(_ context.Context, medicationID string, schedules []model.MedicationSchedule, retiredAt time.Time) error {
	stored := m.find(medicationID)
	if stored == nil {
		return gorm.ErrRecordNotFound
	}
	kept := make(map[int]bool)
	for i := range schedules {
		schedules[i].MedicationID = medicationID
		matched := false
		for j := range stored.Schedules {
			cur := &stored.Schedules[j]
			if cur.RetiredAt == nil && !kept[j] && cur.SameDose(&schedules[i]) {
				kept[j] = true
				schedules[i] = *cur
				matched = true
				break
			}
		}
		if !matched && schedules[i].ScheduleID == "" {
			schedules[i].ScheduleID = nextID("sched")
		}
		if !matched {
			stored.Schedules = append(stored.Schedules, schedules[i])
			kept[len(stored.Schedules)-1] = true
		}
	}
	for j := range stored.Schedules {
		if !kept[j] && stored.Schedules[j].RetiredAt == nil {
			at := retiredAt
			stored.Schedules[j].RetiredAt = &at
		}
	}
	return nil
}

func (m *mockMedicationRepo) ListRetiredSchedules(_ context.Context, medicationIDs []string, after time.Time) ([]model.MedicationSchedule, error) {
	var result []model.MedicationSchedule
	for _, id := range medicationIDs {
		med := m.find(id)
		if med == nil {
			continue
		}
		for _, sc := range med.Schedules {
			if sc.RetiredAt != nil && sc.RetiredAt.After(after) {
				result = append(result, sc)
			}
		}
	}
	return result, nil
}

func (m *mockMedicationRepo) GetSchedule(_ context.Context, scheduleID string) (*model.MedicationSchedule, error) {
	for _, med := range m.meds {
		for i := range med.Schedules {
			if med.Schedules[i].ScheduleID == scheduleID {
				s := med.Schedules[i]
				return &s, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMedicationRepo) Delete(_ context.Context, id string) error {
	for i, med := range m.meds {
		if med.MedicationID == id {
			m.meds = append(m.meds[:i], m.meds[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// copyMedication returns a detached copy with the current schedules ordered
// by time, as the database query does.
func copyMedication(med *model.Medication) *model.Medication {
	c := *med
	c.Schedules = nil
	for _, sc := range med.Schedules {
		if sc.RetiredAt == nil {
			c.Schedules = append(c.Schedules, sc)
		}
	}
	sort.SliceStable(c.Schedules, func(i, j int) bool {
		return c.Schedules[i].TimeOfDay < c.Schedules[j].TimeOfDay
	})
	return &c
}

// ── Mock IntakeLogRepository ──

type mockIntakeLogRepo struct {
	logs []*model.IntakeLog
}

func newMockIntakeLogRepo() *mockIntakeLogRepo {
	return &mockIntakeLogRepo{}
}

func sameSchedule(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *mockIntakeLogRepo) MarkTaken(_ context.Context, log *model.IntakeLog, overwrite bool) (bool, error) {
	log.ScheduledAt = log.ScheduledAt.UTC()
	log.Status = model.IntakeTaken
	if log.ScheduleID != nil {
		for _, existing := range m.logs {
			if existing.MedicationID == log.MedicationID &&
				sameSchedule(existing.ScheduleID, log.ScheduleID) &&
				existing.ScheduledAt.Equal(log.ScheduledAt) {
				if !overwrite && existing.Status == model.IntakeTaken {
					return false, nil
				}
				existing.TakenAt = log.TakenAt
				existing.Status = model.IntakeTaken
				return true, nil
			}
		}
	}
	if log.IntakeLogID == "" {
		log.IntakeLogID = nextID("intake")
	}
	stored := *log
	m.logs = append(m.logs, &stored)
	return true, nil
}

func (m *mockIntakeLogRepo) GetByOccurrence(_ context.Context, medicationID string, scheduleID *string, scheduledAt time.Time) (*model.IntakeLog, error) {
	for _, l := range m.logs {
		if l.MedicationID == medicationID && sameSchedule(l.ScheduleID, scheduleID) && l.ScheduledAt.Equal(scheduledAt) {
			c := *l
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIntakeLogRepo) ListForMedications(_ context.Context, medicationIDs []string, from, to time.Time) ([]model.IntakeLog, error) {
	ids := make(map[string]bool, len(medicationIDs))
	for _, id := range medicationIDs {
		ids[id] = true
	}
	var result []model.IntakeLog
	for _, l := range m.logs {
		if ids[l.MedicationID] && !l.ScheduledAt.Before(from) && l.ScheduledAt.Before(to) {
			result = append(result, *l)
		}
	}
	return result, nil
}

// ── Mock ContactRepository ──

type mockContactRepo struct {
	contacts []*model.Contact
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{}
}

func (m *mockContactRepo) Create(_ context.Context, c *model.Contact) error {
	if c.ContactID == "" {
		c.ContactID = nextID("contact")
	}
	m.contacts = append(m.contacts, c)
	return nil
}

func (m *mockContactRepo) GetByID(_ context.Context, id string) (*model.Contact, error) {
	for _, c := range m.contacts {
		if c.ContactID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContactRepo) ListByUser(_ context.Context, userID string) ([]model.Contact, error) {
	var result []model.Contact
	for _, c := range m.contacts {
		if c.UserID == userID {
			result = append(result, *c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Priority > result[j].Priority })
	return result, nil
}

func (m *mockContactRepo) ListEmergency(ctx context.Context, userID string) ([]model.Contact, error) {
	all, _ := m.ListByUser(ctx, userID)
	var result []model.Contact
	for _, c := range all {
		if c.IsEmergency {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockContactRepo) Delete(_ context.Context, id string) error {
	for i, c := range m.contacts {
		if c.ContactID == id {
			m.contacts = append(m.contacts[:i], m.contacts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	activities []*model.Activity
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{}
}

func (m *mockActivityRepo) Create(_ context.Context, a *model.Activity) error {
	if a.ActivityID == "" {
		a.ActivityID = nextID("activity")
	}
	m.activities = append(m.activities, a)
	return nil
}

func (m *mockActivityRepo) GetByID(_ context.Context, id string) (*model.Activity, error) {
	for _, a := range m.activities {
		if a.ActivityID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityRepo) ListByUser(_ context.Context, userID string) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		ti, tj := result[i].TimeOfDay, result[j].TimeOfDay
		if ti == nil || tj == nil {
			return ti != nil && tj == nil
		}
		return *ti < *tj
	})
	return result, nil
}

func (m *mockActivityRepo) Delete(_ context.Context, id string) error {
	for i, a := range m.activities {
		if a.ActivityID == id {
			m.activities = append(m.activities[:i], m.activities[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AlertRepository ──

type mockAlertRepo struct {
	alerts  []*model.Alert
	configs []*model.AlertConfig
}

func newMockAlertRepo() *mockAlertRepo {
	return &mockAlertRepo{}
}

func (m *mockAlertRepo) Create(_ context.Context, a *model.Alert) error {
	if a.AlertID == "" {
		a.AlertID = nextID("alert")
	}
	m.alerts = append(m.alerts, a)
	return nil
}

func (m *mockAlertRepo) GetByID(_ context.Context, id string) (*model.Alert, error) {
	for _, a := range m.alerts {
		if a.AlertID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.Alert, error) {
	var result []model.Alert
	for i := len(m.alerts) - 1; i >= 0; i-- {
		if m.alerts[i].UserID == userID {
			result = append(result, *m.alerts[i])
		}
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockAlertRepo) CountUnresolved(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, a := range m.alerts {
		if a.UserID == userID && a.ResolvedAt == nil {
			n++
		}
	}
	return n, nil
}

func (m *mockAlertRepo) Resolve(_ context.Context, id, caregiverID string, at time.Time) (bool, error) {
	for _, a := range m.alerts {
		if a.AlertID == id {
			if a.ResolvedAt != nil {
				return false, nil
			}
			a.ResolvedAt = &at
			a.ResolvedBy = &caregiverID
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAlertRepo) GetGlobalConfig(_ context.Context, userID string) (*model.AlertConfig, error) {
	for _, c := range m.configs {
		if c.UserID == userID && c.MedicationID == nil {
			cp := *c
			cp.Caregivers = append([]model.AlertConfigCaregiver(nil), c.Caregivers...)
			sort.SliceStable(cp.Caregivers, func(i, j int) bool {
				return cp.Caregivers[i].Position < cp.Caregivers[j].Position
			})
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) CreateConfig(_ context.Context, cfg *model.AlertConfig) error {
	if cfg.AlertConfigID == "" {
		cfg.AlertConfigID = nextID("alertcfg")
	}
	stored := *cfg
	stored.Caregivers = nil
	m.configs = append(m.configs, &stored)
	return nil
}

func (m *mockAlertRepo) UpdateConfig(_ context.Context, cfg *model.AlertConfig) error {
	for _, c := range m.configs {
		if c.AlertConfigID == cfg.AlertConfigID {
			caregivers := c.Caregivers
			*c = *cfg
			c.Caregivers = caregivers
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) ReplaceConfigCaregivers(_ context.Context, configID string, caregiverIDs []string) error {
	for _, c := range m.configs {
		if c.AlertConfigID == configID {
			c.Caregivers = nil
			for i, id := range caregiverIDs {
				c.Caregivers = append(c.Caregivers, model.AlertConfigCaregiver{
					AlertConfigID: configID,
					CaregiverID:   id,
					Position:      i,
				})
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock MoodLogRepository ──

type mockMoodLogRepo struct {
	logs []*model.MoodLog
}

func newMockMoodLogRepo() *mockMoodLogRepo {
	return &mockMoodLogRepo{}
}

func (m *mockMoodLogRepo) Create(_ context.Context, l *model.MoodLog) error {
	if l.MoodLogID == "" {
		l.MoodLogID = nextID("mood")
	}
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockMoodLogRepo) ListRecent(_ context.Context, userID string, limit int) ([]model.MoodLog, error) {
	var result []model.MoodLog
	for i := len(m.logs) - 1; i >= 0 && len(result) < limit; i-- {
		if m.logs[i].UserID == userID {
			result = append(result, *m.logs[i])
		}
	}
	return result, nil
}

func (m *mockMoodLogRepo) Latest(ctx context.Context, userID string) (*model.MoodLog, error) {
	recent, _ := m.ListRecent(ctx, userID, 1)
	if len(recent) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &recent[0], nil
}

// ── Mock ChatMessageRepository ──

type mockChatMessageRepo struct {
	messages []*model.ChatMessage
}

func newMockChatMessageRepo() *mockChatMessageRepo {
	return &mockChatMessageRepo{}
}

func (m *mockChatMessageRepo) Create(_ context.Context, msg *model.ChatMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = nextID("msg")
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockChatMessageRepo) ListRecent(_ context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	var mine []model.ChatMessage
	for _, msg := range m.messages {
		if msg.UserID == userID {
			mine = append(mine, *msg)
		}
	}
	if len(mine) > limit {
		mine = mine[len(mine)-limit:]
	}
	return mine, nil
}

// ── Mock AppointmentRepository ──

type mockAppointmentRepo struct {
	appts []*model.Appointment
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	if a.AppointmentID == "" {
		a.AppointmentID = nextID("appt")
	}
	m.appts = append(m.appts, a)
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id string) (*model.Appointment, error) {
	for _, a := range m.appts {
		if a.AppointmentID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAppointmentRepo) filter(keep func(a *model.Appointment) bool) []model.Appointment {
	var result []model.Appointment
	for _, a := range m.appts {
		if keep(a) {
			result = append(result, *a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		ti, tj := result[i].Time, result[j].Time
		if ti == nil || tj == nil {
			return ti != nil && tj == nil
		}
		return *ti < *tj
	})
	return result
}

func (m *mockAppointmentRepo) List(_ context.Context, userID, status string) ([]model.Appointment, error) {
	return m.filter(func(a *model.Appointment) bool {
		return a.UserID == userID && (status == "" || a.Status == status)
	}), nil
}

func (m *mockAppointmentRepo) ListUpcoming(_ context.Context, userID, today string, limit int) ([]model.Appointment, error) {
	result := m.filter(func(a *model.Appointment) bool {
		return a.UserID == userID && a.Status == model.AppointmentScheduled && a.Date >= today
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockAppointmentRepo) Update(_ context.Context, appt *model.Appointment) error {
	for _, a := range m.appts {
		if a.AppointmentID == appt.AppointmentID {
			*a = *appt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id string) error {
	for i, a := range m.appts {
		if a.AppointmentID == id {
			m.appts = append(m.appts[:i], m.appts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock HealthReadingRepository ──

type mockHealthReadingRepo struct {
	readings []*model.HealthReading
}

func newMockHealthReadingRepo() *mockHealthReadingRepo {
	return &mockHealthReadingRepo{}
}

func (m *mockHealthReadingRepo) Create(_ context.Context, r *model.HealthReading) error {
	if r.ReadingID == "" {
		r.ReadingID = nextID("reading")
	}
	m.readings = append(m.readings, r)
	return nil
}

func (m *mockHealthReadingRepo) GetByID(_ context.Context, id string) (*model.HealthReading, error) {
	for _, r := range m.readings {
		if r.ReadingID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHealthReadingRepo) matching(userID, readingType string) []model.HealthReading {
	var result []model.HealthReading
	for _, r := range m.readings {
		if r.UserID == userID && (readingType == "" || r.ReadingType == readingType) {
			result = append(result, *r)
		}
	}
	return result
}

func (m *mockHealthReadingRepo) List(_ context.Context, userID, readingType string, limit int) ([]model.HealthReading, error) {
	result := m.matching(userID, readingType)
	sort.SliceStable(result, func(i, j int) bool { return result[i].MeasuredAt.After(result[j].MeasuredAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockHealthReadingRepo) ListSince(_ context.Context, userID, readingType string, since time.Time) ([]model.HealthReading, error) {
	var result []model.HealthReading
	for _, r := range m.matching(userID, readingType) {
		if !r.MeasuredAt.Before(since) {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].MeasuredAt.Before(result[j].MeasuredAt) })
	return result, nil
}

func (m *mockHealthReadingRepo) LatestPerType(ctx context.Context, userID string) ([]model.HealthReading, error) {
	var result []model.HealthReading
	for _, rt := range model.ReadingTypes {
		list, _ := m.List(ctx, userID, rt.ID, 1)
		result = append(result, list...)
	}
	return result, nil
}

func (m *mockHealthReadingRepo) Delete(_ context.Context, id string) error {
	for i, r := range m.readings {
		if r.ReadingID == id {
			m.readings = append(m.readings[:i], m.readings[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock NotificationLogRepository ──

type mockNotificationLogRepo struct {
	logs []*model.NotificationLog
}

func newMockNotificationLogRepo() *mockNotificationLogRepo {
	return &mockNotificationLogRepo{}
}

func (m *mockNotificationLogRepo) Create(_ context.Context, l *model.NotificationLog) error {
	if l.NotificationID == "" {
		l.NotificationID = nextID("notif")
	}
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockNotificationLogRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.NotificationLog, error) {
	var result []model.NotificationLog
	for i := len(m.logs) - 1; i >= 0 && len(result) < limit; i-- {
		if m.logs[i].UserID == userID {
			result = append(result, *m.logs[i])
		}
	}
	return result, nil
}
