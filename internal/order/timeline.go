package order

// Stage is one entry in the projected fulfillment timeline.
type Stage struct {
	Status    Status
	Completed bool
	Current   bool
}

// Projection is the timeline the tracking view renders: the five linear
// stages plus an optional out-of-band badge for the side states.
type Projection struct {
	Stages []Stage
	// Badge is set when the order sits in a side state. The linear stages
	// then show the last known position rather than the badge itself.
	Badge Status
}

// Cancelled and return-requested orders carry no linear index of their own,
// so the projection anchors them explicitly: a return request is only
// reachable from delivered, and a cancelled order is known to have been
// placed.
var sideStateAnchors = map[Status]Status{
	StatusReturnRequested: StatusDelivered,
	StatusCancelled:       StatusOrdered,
}

// Timeline projects the current status onto the linear progression. Stages
// at or before the current index render completed, the current index is
// additionally in progress, and later stages are pending. Side states and
// unknown values never panic: side states anchor at their last known linear
// position and surface as a badge, unknown values render an all-pending
// trail.
func Timeline(status Status) Projection {
	proj := Projection{Stages: make([]Stage, len(progression))}

	anchor := status
	if mapped, ok := sideStateAnchors[status]; ok {
		proj.Badge = status
		anchor = mapped
	}

	idx := anchor.Index()
	for i, stage := range progression {
		proj.Stages[i] = Stage{
			Status:    stage,
			Completed: idx >= 0 && i <= idx,
			Current:   idx >= 0 && i == idx,
		}
	}
	return proj
}

// CompletedStages counts the stages the projection marks completed.
func (p Projection) CompletedStages() int {
	n := 0
	for _, stage := range p.Stages {
		if stage.Completed {
			n++
		}
	}
	return n
}
