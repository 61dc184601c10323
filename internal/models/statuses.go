package models

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleHR        UserRole = "hr"
	UserRoleCandidate UserRole = "candidate"
)

// SelfRegisterRole coerces any role outside {hr, candidate} down to
// candidate. Admin accounts are only created out-of-band.
func SelfRegisterRole(requested UserRole) UserRole {
	switch requested {
	case UserRoleHR, UserRoleCandidate:
		return requested
	default:
		return UserRoleCandidate
	}
}

type JobType string

const (
	JobTypeFullTime JobType = "full-time"
	JobTypePartTime JobType = "part-time"
	JobTypeContract JobType = "contract"
	JobTypeRemote   JobType = "remote"
)

func ValidJobType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote:
		return true
	}
	return false
}

type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusClosed:
		return true
	}
	return false
}

type CandidateStatus string

const (
	CandidateStatusApplied   CandidateStatus = "applied"
	CandidateStatusScreening CandidateStatus = "screening"
	CandidateStatusInterview CandidateStatus = "interview"
	CandidateStatusOffer     CandidateStatus = "offer"
	CandidateStatusRejected  CandidateStatus = "rejected"
	CandidateStatusHired     CandidateStatus = "hired"
)

// ValidCandidateStatus checks enum membership only. The applied→…→hired
// ordering is a UI convention, any transition is accepted server-side.
func ValidCandidateStatus(s CandidateStatus) bool {
	switch s {
	case CandidateStatusApplied, CandidateStatusScreening, CandidateStatusInterview,
		CandidateStatusOffer, CandidateStatusRejected, CandidateStatusHired:
		return true
	}
	return false
}
