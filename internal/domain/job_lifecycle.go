package domain

// jobTransitions holds every allowed status edge. Archived has none:
// cloning an archived job creates a new entity instead.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:     {JobStatusPublished},
	JobStatusPublished: {JobStatusPaused, JobStatusClosed},
	JobStatusPaused:    {JobStatusPublished, JobStatusClosed},
	JobStatusClosed:    {JobStatusArchived},
	JobStatusArchived:  {},
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, candidate := range jobTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s JobStatus) IsTerminal() bool {
	return len(jobTransitions[s]) == 0
}

// AcceptsApplications reports whether candidates may apply to the job
func (j *Job) AcceptsApplications() bool {
	return j.Status == JobStatusPublished
}

// Clone returns a deep copy; no slice or pointer is shared with j
func (j *Job) Clone() *Job {
	c := *j
	c.Requirements = cloneStrings(j.Requirements)
	c.Responsibilities = cloneStrings(j.Responsibilities)
	c.Benefits = cloneStrings(j.Benefits)
	if j.ClosureReason != nil {
		r := *j.ClosureReason
		c.ClosureReason = &r
	}
	if j.ApplicationDeadline != nil {
		d := *j.ApplicationDeadline
		c.ApplicationDeadline = &d
	}
	if j.TemplateID != nil {
		t := *j.TemplateID
		c.TemplateID = &t
	}
	if j.Category != nil {
		cat := *j.Category
		c.Category = &cat
	}
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
