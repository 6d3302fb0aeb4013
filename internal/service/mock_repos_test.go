package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/model"
	"github.com/leonardodellacroce/TeatriApuani-sub001/internal/repository"
)

// ════════════════════════════════════════════
// 手写内存 Mock Repository，供 service 层单元测试使用
// 只实现测试关心的行为，其余方法为空操作
// ════════════════════════════════════════════

// newMockRepository 组装一套空的内存仓储
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:             &mockUserRepo{users: make(map[string]*model.User)},
		Company:          &mockCompanyRepo{companies: make(map[string]*model.Company)},
		Location:         &mockLocationRepo{locations: make(map[string]*model.Location)},
		Client:           &mockClientRepo{clients: make(map[string]*model.Client)},
		Event:            &mockEventRepo{events: make(map[string]*model.Event)},
		Workday:          &mockWorkdayRepo{},
		TaskType:         &mockTaskTypeRepo{taskTypes: make(map[string]*model.TaskType)},
		Duty:             &mockDutyRepo{duties: make(map[string]*model.Duty)},
		Assignment:       &mockAssignmentRepo{},
		TimeEntry:        &mockTimeEntryRepo{},
		DocumentTemplate: &mockDocumentTemplateRepo{templates: make(map[string]*model.DocumentTemplate)},
		Document:         &mockDocumentRepo{documents: make(map[string]*model.Document)},
		Signature:        &mockSignatureRepo{},
	}
}

// ── User ──

type mockUserRepo struct {
	users map[string]*model.User
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, _, _ int) ([]model.User, int64, error) {
	all, _ := m.ListAll(ctx)
	return all, int64(len(all)), nil
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockUserRepo) ListByCompany(_ context.Context, companyID string) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

// ── Company ──

type mockCompanyRepo struct {
	companies map[string]*model.Company
}

func (m *mockCompanyRepo) Create(_ context.Context, company *model.Company) error {
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyRepo) List(_ context.Context) ([]model.Company, error) {
	out := make([]model.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, company *model.Company) error {
	m.companies[company.CompanyID] = company
	return nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.companies, id)
	return nil
}

// ── Location ──

type mockLocationRepo struct {
	locations map[string]*model.Location
}

func (m *mockLocationRepo) Create(_ context.Context, location *model.Location) error {
	m.locations[location.LocationID] = location
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id string) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) List(_ context.Context) ([]model.Location, error) {
	out := make([]model.Location, 0, len(m.locations))
	for _, l := range m.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (m *mockLocationRepo) Update(_ context.Context, location *model.Location) error {
	m.locations[location.LocationID] = location
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.locations, id)
	return nil
}

// ── Client ──

type mockClientRepo struct {
	clients map[string]*model.Client
}

func (m *mockClientRepo) Create(_ context.Context, client *model.Client) error {
	m.clients[client.ClientID] = client
	return nil
}

func (m *mockClientRepo) GetByID(_ context.Context, id string) (*model.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) GetByCode(_ context.Context, code string) (*model.Client, error) {
	for _, c := range m.clients {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClientRepo) List(_ context.Context, _, _ int) ([]model.Client, int64, error) {
	out := make([]model.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *mockClientRepo) Update(_ context.Context, client *model.Client) error {
	m.clients[client.ClientID] = client
	return nil
}

func (m *mockClientRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.clients, id)
	return nil
}

// ── Event ──

type mockEventRepo struct {
	events map[string]*model.Event
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context, clientID string, _, _ int) ([]model.Event, int64, error) {
	var out []model.Event
	for _, e := range m.events {
		if clientID == "" || e.ClientID == clientID {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockEventRepo) ListIDsByClient(_ context.Context, clientID string) ([]string, error) {
	var ids []string
	for _, e := range m.events {
		if e.ClientID == clientID {
			ids = append(ids, e.EventID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockEventRepo) ListAllIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.events))
	for id := range m.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.events, id)
	return nil
}

// ── Workday ──

type mockWorkdayRepo struct {
	workdays []model.Workday
}

func (m *mockWorkdayRepo) Create(_ context.Context, workday *model.Workday) error {
	m.workdays = append(m.workdays, *workday)
	return nil
}

func (m *mockWorkdayRepo) GetByID(_ context.Context, id string) (*model.Workday, error) {
	for i := range m.workdays {
		if m.workdays[i].WorkdayID == id {
			return &m.workdays[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkdayRepo) ListByEvent(_ context.Context, eventID string) ([]model.Workday, error) {
	var out []model.Workday
	for _, wd := range m.workdays {
		if wd.EventID == eventID {
			out = append(out, wd)
		}
	}
	return out, nil
}

func (m *mockWorkdayRepo) ListByEventsAndRange(_ context.Context, eventIDs []string, start, end time.Time) ([]model.Workday, error) {
	inScope := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		inScope[id] = true
	}
	var out []model.Workday
	for _, wd := range m.workdays {
		if !inScope[wd.EventID] {
			continue
		}
		if wd.Date.Before(start) || wd.Date.After(end) {
			continue
		}
		out = append(out, wd)
	}
	return out, nil
}

func (m *mockWorkdayRepo) Update(_ context.Context, _ *model.Workday) error { return nil }

func (m *mockWorkdayRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

// ── TaskType ──

type mockTaskTypeRepo struct {
	taskTypes map[string]*model.TaskType
}

func (m *mockTaskTypeRepo) Create(_ context.Context, taskType *model.TaskType) error {
	m.taskTypes[taskType.TaskTypeID] = taskType
	return nil
}

func (m *mockTaskTypeRepo) GetByID(_ context.Context, id string) (*model.TaskType, error) {
	if tt, ok := m.taskTypes[id]; ok {
		return tt, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskTypeRepo) List(_ context.Context) ([]model.TaskType, error) {
	out := make([]model.TaskType, 0, len(m.taskTypes))
	for _, tt := range m.taskTypes {
		out = append(out, *tt)
	}
	return out, nil
}

func (m *mockTaskTypeRepo) Update(_ context.Context, taskType *model.TaskType) error {
	m.taskTypes[taskType.TaskTypeID] = taskType
	return nil
}

func (m *mockTaskTypeRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.taskTypes, id)
	return nil
}

// ── Duty ──

type mockDutyRepo struct {
	duties map[string]*model.Duty
}

func (m *mockDutyRepo) Create(_ context.Context, duty *model.Duty) error {
	m.duties[duty.DutyID] = duty
	return nil
}

func (m *mockDutyRepo) GetByID(_ context.Context, id string) (*model.Duty, error) {
	if d, ok := m.duties[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDutyRepo) List(_ context.Context) ([]model.Duty, error) {
	out := make([]model.Duty, 0, len(m.duties))
	for _, d := range m.duties {
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockDutyRepo) Update(_ context.Context, duty *model.Duty) error {
	m.duties[duty.DutyID] = duty
	return nil
}

func (m *mockDutyRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.duties, id)
	return nil
}

// ── Assignment ──

type mockAssignmentRepo struct {
	assignments []model.Assignment
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	m.assignments = append(m.assignments, *assignment)
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	for i := range m.assignments {
		if m.assignments[i].AssignmentID == id {
			return &m.assignments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByWorkday(_ context.Context, workdayID string) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range m.assignments {
		if a.WorkdayID == workdayID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) ListByWorkdays(_ context.Context, workdayIDs []string) ([]model.Assignment, error) {
	inScope := make(map[string]bool, len(workdayIDs))
	for _, id := range workdayIDs {
		inScope[id] = true
	}
	var out []model.Assignment
	for _, a := range m.assignments {
		if inScope[a.WorkdayID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) ListByUserAndRange(_ context.Context, userID string, start, end time.Time) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range m.assignments {
		if a.Workday == nil || a.Workday.Date.Before(start) || a.Workday.Date.After(end) {
			continue
		}
		if !strings.Contains(a.AssignedUsers, `"userId":"`+userID+`"`) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, _ *model.Assignment) error { return nil }

func (m *mockAssignmentRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

// ── TimeEntry ──

type mockTimeEntryRepo struct {
	entries []model.TimeEntry
}

func (m *mockTimeEntryRepo) Create(_ context.Context, entry *model.TimeEntry) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockTimeEntryRepo) GetByID(_ context.Context, id string) (*model.TimeEntry, error) {
	for i := range m.entries {
		if m.entries[i].TimeEntryID == id {
			return &m.entries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeEntryRepo) GetByAssignmentAndUser(_ context.Context, assignmentID, userID string) (*model.TimeEntry, error) {
	for i := range m.entries {
		if m.entries[i].AssignmentID == assignmentID && m.entries[i].UserID == userID {
			return &m.entries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeEntryRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	for _, e := range m.entries {
		if e.AssignmentID == assignmentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockTimeEntryRepo) Update(_ context.Context, _ *model.TimeEntry) error { return nil }

func (m *mockTimeEntryRepo) Delete(_ context.Context, _ string, _ string) error { return nil }

// ── DocumentTemplate ──

type mockDocumentTemplateRepo struct {
	templates map[string]*model.DocumentTemplate
}

func (m *mockDocumentTemplateRepo) Create(_ context.Context, template *model.DocumentTemplate) error {
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockDocumentTemplateRepo) GetByID(_ context.Context, id string) (*model.DocumentTemplate, error) {
	if t, ok := m.templates[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentTemplateRepo) List(_ context.Context) ([]model.DocumentTemplate, error) {
	out := make([]model.DocumentTemplate, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockDocumentTemplateRepo) Update(_ context.Context, template *model.DocumentTemplate) error {
	m.templates[template.TemplateID] = template
	return nil
}

func (m *mockDocumentTemplateRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.templates, id)
	return nil
}

// ── Document ──

type mockDocumentRepo struct {
	documents map[string]*model.Document
}

func (m *mockDocumentRepo) Create(_ context.Context, document *model.Document) error {
	m.documents[document.DocumentID] = document
	return nil
}

func (m *mockDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	if d, ok := m.documents[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDocumentRepo) List(_ context.Context, _, _ int) ([]model.Document, int64, error) {
	out := make([]model.Document, 0, len(m.documents))
	for _, d := range m.documents {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (m *mockDocumentRepo) UpdateStatus(_ context.Context, id, status string) error {
	if d, ok := m.documents[id]; ok {
		d.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Signature ──

type mockSignatureRepo struct {
	signatures []model.Signature
}

func (m *mockSignatureRepo) Create(_ context.Context, signature *model.Signature) error {
	m.signatures = append(m.signatures, *signature)
	return nil
}

func (m *mockSignatureRepo) ListByDocument(_ context.Context, documentID string) ([]model.Signature, error) {
	var out []model.Signature
	for _, s := range m.signatures {
		if s.DocumentID == documentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSignatureRepo) CountDistinctSigners(_ context.Context, documentID string) (int64, error) {
	seen := make(map[string]bool)
	for _, s := range m.signatures {
		if s.DocumentID == documentID {
			seen[s.SignerName] = true
		}
	}
	return int64(len(seen)), nil
}
