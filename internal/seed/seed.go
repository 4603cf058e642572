// Package seed turns the YAML fixture file into a dataset for the seed
// repository.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/slug"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

var idNamespace = uuid.MustParse("6f1c2b7e-58a4-4c36-9d0e-3b1f8a6c2d45")

type fixtureFile struct {
	Users        []userFixture        `yaml:"users"`
	Templates    []templateFixture    `yaml:"templates"`
	Jobs         []jobFixture         `yaml:"jobs"`
	Applications []applicationFixture `yaml:"applications"`
}

type userFixture struct {
	Key      string `yaml:"key"`
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

type templateFixture struct {
	Key              string   `yaml:"key"`
	Name             string   `yaml:"name"`
	Category         string   `yaml:"category"`
	Title            string   `yaml:"title"`
	Type             string   `yaml:"type"`
	SalaryMin        string   `yaml:"salaryMin"`
	SalaryMax        string   `yaml:"salaryMax"`
	Location         string   `yaml:"location"`
	Description      string   `yaml:"description"`
	Requirements     []string `yaml:"requirements"`
	Responsibilities []string `yaml:"responsibilities"`
	Benefits         []string `yaml:"benefits"`
}

type jobFixture struct {
	Key              string   `yaml:"key"`
	Title            string   `yaml:"title"`
	Type             string   `yaml:"type"`
	SalaryMin        string   `yaml:"salaryMin"`
	SalaryMax        string   `yaml:"salaryMax"`
	Location         string   `yaml:"location"`
	Color            string   `yaml:"color"`
	Description      string   `yaml:"description"`
	Requirements     []string `yaml:"requirements"`
	Responsibilities []string `yaml:"responsibilities"`
	Benefits         []string `yaml:"benefits"`
	Status           string   `yaml:"status"`
	ClosureReason    string   `yaml:"closureReason"`
	Category         string   `yaml:"category"`
	Template         string   `yaml:"template"`
	DeadlineInDays   *int     `yaml:"deadlineInDays"`
}

type applicationFixture struct {
	Key            string          `yaml:"key"`
	Job            string          `yaml:"job"`
	Name           string          `yaml:"name"`
	Email          string          `yaml:"email"`
	Phone          string          `yaml:"phone"`
	ResumeURL      string          `yaml:"resumeUrl"`
	LinkedIn       string          `yaml:"linkedIn"`
	Portfolio      string          `yaml:"portfolio"`
	CoverLetter    string          `yaml:"coverLetter"`
	Experience     string          `yaml:"experience"`
	Stage          string          `yaml:"stage"`
	AppliedDaysAgo int             `yaml:"appliedDaysAgo"`
	Tags           []string        `yaml:"tags"`
	Reviewer       string          `yaml:"reviewer"`
	Archived       bool            `yaml:"archived"`
	Notes          []noteFixture   `yaml:"notes"`
	Ratings        []ratingFixture `yaml:"ratings"`
}

type noteFixture struct {
	Author     string `yaml:"author"`
	NoteType   string `yaml:"noteType"`
	Content    string `yaml:"content"`
	IsPinned   bool   `yaml:"isPinned"`
	Visibility string `yaml:"visibility"`
}

type ratingFixture struct {
	Category string  `yaml:"category"`
	Score    float64 `yaml:"score"`
	MaxScore float64 `yaml:"maxScore"`
	Reviewer string  `yaml:"reviewer"`
	Comment  string  `yaml:"comment"`
}

// Source loads fixtures from a file, or the embedded default when path is empty
type Source struct {
	path string
	now  func() time.Time
	cost int
}

func NewSource(path string) *Source {
	return &Source{path: path, now: time.Now, cost: bcrypt.DefaultCost}
}

func (s *Source) Load() (*domain.SeedData, error) {
	raw := defaultFixtures
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	return s.Parse(raw)
}

// Parse builds the dataset and derives counters, averages and the creation
// history so the seeded rows satisfy the same invariants as live data.
func (s *Source) Parse(raw []byte) (*domain.SeedData, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	now := s.now().UTC()
	data := &domain.SeedData{}

	users := make(map[string]domain.AdminUser, len(file.Users))
	for _, f := range file.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", f.Key, err)
		}
		user := domain.AdminUser{
			ID:           stableID("user", f.Key),
			Email:        strings.ToLower(f.Email),
			Name:         f.Name,
			Role:         f.Role,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		data.Users = append(data.Users, user)
		users[f.Key] = user
	}

	templates := make(map[string]string, len(file.Templates))
	for _, f := range file.Templates {
		tpl := domain.JobTemplate{
			ID:               stableID("template", f.Key),
			Name:             f.Name,
			Category:         f.Category,
			Title:            f.Title,
			Type:             domain.JobType(f.Type),
			SalaryMin:        f.SalaryMin,
			SalaryMax:        f.SalaryMax,
			Location:         f.Location,
			Description:      f.Description,
			Requirements:     orEmpty(f.Requirements),
			Responsibilities: orEmpty(f.Responsibilities),
			Benefits:         orEmpty(f.Benefits),
			CreatedAt:        now,
		}
		if !tpl.Type.IsValid() {
			return nil, fmt.Errorf("template %s: unknown type %q", f.Key, f.Type)
		}
		data.Templates = append(data.Templates, tpl)
		templates[f.Key] = tpl.ID
	}

	jobs := make(map[string]int, len(file.Jobs))
	for _, f := range file.Jobs {
		job, err := buildJob(f, templates, now)
		if err != nil {
			return nil, err
		}
		data.Jobs = append(data.Jobs, *job)
		jobs[f.Key] = len(data.Jobs) - 1
		data.History = append(data.History, domain.JobStatusHistory{
			ID:        stableID("history", f.Key),
			JobID:     job.ID,
			ToStatus:  job.Status,
			ChangedAt: now,
			ChangedBy: "seed",
			Reason:    job.ClosureReason,
		})
	}

	for _, f := range file.Applications {
		idx, ok := jobs[f.Job]
		if !ok {
			return nil, fmt.Errorf("application %s: unknown job %q", f.Key, f.Job)
		}
		job := &data.Jobs[idx]

		app, err := buildApplication(f, job, users, now)
		if err != nil {
			return nil, err
		}
		job.ApplicationsCount++
		data.Applications = append(data.Applications, *app)
	}

	return data, nil
}

func buildJob(f jobFixture, templates map[string]string, now time.Time) (*domain.Job, error) {
	job := &domain.Job{
		ID:               stableID("job", f.Key),
		Title:            f.Title,
		Type:             domain.JobType(f.Type),
		SalaryMin:        f.SalaryMin,
		SalaryMax:        f.SalaryMax,
		Location:         f.Location,
		Color:            f.Color,
		Description:      f.Description,
		Requirements:     orEmpty(f.Requirements),
		Responsibilities: orEmpty(f.Responsibilities),
		Benefits:         f.Benefits,
		Status:           domain.JobStatus(f.Status),
		StatusChangedAt:  now,
		MetaTitle:        f.Title,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	job.Slug = slug.Make(job.Title, job.ID)
	if job.Color == "" {
		job.Color = domain.DefaultJobColor
	}
	if job.Status == "" {
		job.Status = domain.JobStatusDraft
	}
	if !job.Type.IsValid() {
		return nil, fmt.Errorf("job %s: unknown type %q", f.Key, f.Type)
	}
	if !job.Status.IsValid() {
		return nil, fmt.Errorf("job %s: unknown status %q", f.Key, f.Status)
	}

	if job.Status == domain.JobStatusClosed {
		reason := domain.ClosureReason(f.ClosureReason)
		if !reason.IsValid() {
			return nil, fmt.Errorf("job %s: closed jobs need a valid closureReason", f.Key)
		}
		job.ClosureReason = &reason
	} else if f.ClosureReason != "" {
		return nil, fmt.Errorf("job %s: closureReason is only allowed for closed jobs", f.Key)
	}

	if f.Category != "" {
		category := f.Category
		job.Category = &category
	}
	if f.Template != "" {
		id, ok := templates[f.Template]
		if !ok {
			return nil, fmt.Errorf("job %s: unknown template %q", f.Key, f.Template)
		}
		job.TemplateID = &id
	}
	if f.DeadlineInDays != nil {
		deadline := now.Truncate(24 * time.Hour).AddDate(0, 0, *f.DeadlineInDays)
		job.ApplicationDeadline = &deadline
	}
	if len([]rune(job.Description)) > 160 {
		job.MetaDescription = string([]rune(job.Description)[:160])
	} else {
		job.MetaDescription = job.Description
	}
	return job, nil
}

func buildApplication(f applicationFixture, job *domain.Job, users map[string]domain.AdminUser, now time.Time) (*domain.Application, error) {
	stage := domain.PipelineStage(f.Stage)
	if stage == "" {
		stage = domain.StageNew
	}
	if !stage.IsValid() {
		return nil, fmt.Errorf("application %s: unknown stage %q", f.Key, f.Stage)
	}

	appliedAt := now.Add(-time.Duration(f.AppliedDaysAgo) * 24 * time.Hour)
	app := &domain.Application{
		ID:             stableID("application", f.Key),
		JobID:          job.ID,
		Name:           f.Name,
		Email:          strings.ToLower(f.Email),
		Phone:          f.Phone,
		Position:       job.Title,
		ResumeURL:      optional(f.ResumeURL),
		LinkedIn:       optional(f.LinkedIn),
		Portfolio:      optional(f.Portfolio),
		CoverLetter:    optional(f.CoverLetter),
		Experience:     f.Experience,
		Status:         stage,
		Stage:          stage,
		StageChangedAt: appliedAt,
		AppliedAt:      appliedAt,
		UpdatedAt:      appliedAt,
		IsArchived:     f.Archived,
		Tags:           orEmpty(f.Tags),
	}
	if f.Reviewer != "" {
		user, ok := users[f.Reviewer]
		if !ok {
			return nil, fmt.Errorf("application %s: unknown reviewer %q", f.Key, f.Reviewer)
		}
		reviewerID := user.ID
		app.ReviewerID = &reviewerID
	}

	for i, n := range f.Notes {
		author, ok := users[n.Author]
		if !ok {
			return nil, fmt.Errorf("application %s: unknown note author %q", f.Key, n.Author)
		}
		note := domain.Note{
			ID:            stableID("note", fmt.Sprintf("%s/%d", f.Key, i)),
			ApplicationID: app.ID,
			AuthorID:      author.ID,
			AuthorName:    author.Name,
			NoteType:      domain.NoteType(n.NoteType),
			Content:       n.Content,
			IsPinned:      n.IsPinned,
			Visibility:    domain.NoteVisibility(n.Visibility),
			CreatedAt:     appliedAt,
		}
		if note.NoteType == "" {
			note.NoteType = domain.NoteGeneral
		}
		if note.Visibility == "" {
			note.Visibility = domain.VisibilityTeam
		}
		app.Notes = append(app.Notes, note)
	}

	for i, r := range f.Ratings {
		reviewer, ok := users[r.Reviewer]
		if !ok {
			return nil, fmt.Errorf("application %s: unknown reviewer %q", f.Key, r.Reviewer)
		}
		maxScore := r.MaxScore
		if maxScore <= 0 {
			maxScore = domain.RatingScale
		}
		app.Ratings = append(app.Ratings, domain.Rating{
			ID:            stableID("rating", fmt.Sprintf("%s/%d", f.Key, i)),
			ApplicationID: app.ID,
			Category:      r.Category,
			Score:         r.Score,
			MaxScore:      maxScore,
			ReviewerID:    reviewer.ID,
			ReviewerName:  reviewer.Name,
			Comment:       optional(r.Comment),
			CreatedAt:     appliedAt,
		})
	}
	app.Rating = domain.AverageRating(app.Ratings)
	return app, nil
}

func stableID(kind, key string) string {
	return uuid.NewSHA1(idNamespace, []byte(kind+":"+key)).String()
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
