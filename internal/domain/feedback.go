package domain

import "time"

// Feedback is a patient's rating of a doctor after a completed booking
type Feedback struct {
	ID        int64
	DoctorID  int64
	PatientID int64
	Rating    int // 1..5
	Comment   *string
	CreatedAt time.Time
}

// IsValidRating returns true if the rating is within the allowed range
func (f *Feedback) IsValidRating() bool {
	return f.Rating >= MinFeedbackRating && f.Rating <= MaxFeedbackRating
}
