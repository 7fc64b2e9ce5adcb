package service

import (
	"context"
	"sort"
	"sync"

	"github.com/ijpettengill/jobly/internal/domain"
	"github.com/ijpettengill/jobly/internal/events"
	"github.com/ijpettengill/jobly/internal/repository"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
	"github.com/ijpettengill/jobly/pkg/util/sqlutil"
)

type fakeUserRepo struct {
	users        map[string]domain.User
	applications map[string][]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}, applications: map[string][]int{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.Username]; ok {
		return apperrors.NewConflict("user already exists", map[string]any{"username": user.Username})
	}
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeUserRepo) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := f.GetWithPassword(ctx, username)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (f *fakeUserRepo) GetWithPassword(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
	}
	return &u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, username string, fields []sqlutil.Field) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
	}
	for _, field := range fields {
		switch field.Name {
		case "firstName":
			u.FirstName = field.Value.(string)
		case "lastName":
			u.LastName = field.Value.(string)
		case "email":
			u.Email = field.Value.(string)
		case "password":
			u.PasswordHash = field.Value.(string)
		case "isAdmin":
			u.IsAdmin = field.Value.(bool)
		}
	}
	f.users[username] = u
	return &u, nil
}

func (f *fakeUserRepo) Remove(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return apperrors.NewNotFound("user", map[string]any{"username": username})
	}
	delete(f.users, username)
	return nil
}

func (f *fakeUserRepo) ListApplications(_ context.Context, username string) ([]int, error) {
	return append([]int{}, f.applications[username]...), nil
}

func (f *fakeUserRepo) Apply(_ context.Context, username string, jobID int) error {
	for _, id := range f.applications[username] {
		if id == jobID {
			return apperrors.NewConflict("application already exists", nil)
		}
	}
	f.applications[username] = append(f.applications[username], jobID)
	return nil
}

type fakeJobRepo struct {
	jobs       map[int]domain.Job
	nextID     int
	lastSearch *repository.JobFilter
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[int]domain.Job{}, nextID: 1}
}

func (f *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	job.ID = f.nextID
	f.nextID++
	f.jobs[job.ID] = *job
	return nil
}

func (f *fakeJobRepo) FindAll(_ context.Context) ([]domain.Job, error) {
	out := make([]domain.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f *fakeJobRepo) Search(ctx context.Context, filter repository.JobFilter) ([]domain.Job, error) {
	f.lastSearch = &filter
	return f.FindAll(ctx)
}

func (f *fakeJobRepo) Get(_ context.Context, id int) (*domain.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
	}
	return &j, nil
}

func (f *fakeJobRepo) ListByCompany(_ context.Context, handle string) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range f.jobs {
		if j.CompanyHandle == handle {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeJobRepo) Update(_ context.Context, id int, fields []sqlutil.Field) (*domain.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
	}
	for _, field := range fields {
		if field.Name == "title" {
			j.Title = field.Value.(string)
		}
	}
	f.jobs[id] = j
	return &j, nil
}

func (f *fakeJobRepo) Remove(_ context.Context, id int) error {
	if _, ok := f.jobs[id]; !ok {
		return apperrors.NewNotFound("job", map[string]any{"id": id})
	}
	delete(f.jobs, id)
	return nil
}

type fakeCompanyRepo struct {
	companies  map[string]domain.Company
	lastFilter *repository.CompanyFilter
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]domain.Company{}}
}

func (f *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	if _, ok := f.companies[company.Handle]; ok {
		return apperrors.NewConflict("company already exists", map[string]any{"handle": company.Handle})
	}
	f.companies[company.Handle] = *company
	return nil
}

func (f *fakeCompanyRepo) FindAll(_ context.Context, filter repository.CompanyFilter) ([]domain.Company, error) {
	f.lastFilter = &filter
	out := make([]domain.Company, 0, len(f.companies))
	for _, c := range f.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCompanyRepo) Get(_ context.Context, handle string) (*domain.Company, error) {
	c, ok := f.companies[handle]
	if !ok {
		return nil, apperrors.NewNotFound("company", map[string]any{"handle": handle})
	}
	return &c, nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, handle string, fields []sqlutil.Field) (*domain.Company, error) {
	c, ok := f.companies[handle]
	if !ok {
		return nil, apperrors.NewNotFound("company", map[string]any{"handle": handle})
	}
	for _, field := range fields {
		if field.Name == "name" {
			c.Name = field.Value.(string)
		}
	}
	f.companies[handle] = c
	return &c, nil
}

func (f *fakeCompanyRepo) Remove(_ context.Context, handle string) error {
	if _, ok := f.companies[handle]; !ok {
		return apperrors.NewNotFound("company", map[string]any{"handle": handle})
	}
	delete(f.companies, handle)
	return nil
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}
