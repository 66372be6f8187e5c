// Package registration implements the composite front-desk flow: patient plus
// optional visit, vitals and HEF in one atomic transaction. A failure in any
// step, including a queue conflict, rolls the whole registration back so no
// orphan patient is left behind.
package registration

import (
	"github.com/veasna/clinic/internal/domain/patient"
	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/internal/domain/visit"
	"github.com/veasna/clinic/pkg/date"
)

// VisitInput is the visit portion of a registration. The patient id comes
// from the enclosing flow.
type VisitInput struct {
	LocationID int64     `json:"location_id"`
	VisitDate  date.Date `json:"visit_date"`
	QueueNo    string    `json:"queue_no"`
}

type CreateRequest struct {
	Patient *patient.CreateInput `json:"patient"`
	Visit   *VisitInput          `json:"visit"`
	Vitals  *record.VitalsInput  `json:"vitals"`
	HEF     *record.HEFInput     `json:"hef"`
}

type UpdateRequest struct {
	Patient *patient.UpdateInput `json:"patient"`
	Visit   *VisitInput          `json:"visit"`
	Vitals  *record.VitalsInput  `json:"vitals"`
	HEF     *record.HEFInput     `json:"hef"`
}

// Result echoes back what the transaction produced. Absent sections are null.
type Result struct {
	Patient patient.Patient `json:"patient"`
	Visit   *visit.Visit    `json:"visit"`
	Vitals  *record.Vitals  `json:"vitals"`
	HEF     *record.HEF     `json:"hef"`
}
