package lifecycle

import (
	"time"

	"github.com/pickfloor/scheduler/internal/domain"
	"github.com/pickfloor/scheduler/internal/infra/observability"
)

// CreateSwap requires the requester to own the requester shift and that
// shift to be in the future; only one open (pending|accepted) swap may
// exist per requester shift (§4.5 "Swap state machine").
func (m *Manager) CreateSwap(requesterShiftID, requesterEmployeeID int64) (domain.Swap, error) {
	shift, err := m.schedules.GetShift(requesterShiftID)
	if err != nil {
		return domain.Swap{}, err
	}
	if shift == nil {
		return domain.Swap{}, domain.NewError(domain.KindNotFound, "shift not found", domain.ErrShiftNotFound)
	}
	if shift.EmployeeID != requesterEmployeeID {
		return domain.Swap{}, domain.NewError(domain.KindPreconditionViolated, "requester does not own this shift", domain.ErrSelfSwap)
	}
	if !domain.CivilDate(shift.Date).After(domain.CivilDate(time.Now())) {
		return domain.Swap{}, domain.NewError(domain.KindPreconditionViolated, "shift is not in the future", domain.ErrShiftInPast)
	}

	open, err := m.swaps.OpenSwapForShift(requesterShiftID)
	if err != nil {
		return domain.Swap{}, err
	}
	if open != nil {
		return domain.Swap{}, domain.NewError(domain.KindConflict, "requester shift already has an open swap", domain.ErrOpenSwapExists)
	}

	swap := domain.Swap{RequesterShiftID: requesterShiftID, Status: domain.SwapPending, CreatedAt: time.Now()}
	id, err := m.swaps.CreateSwap(swap)
	if err != nil {
		return domain.Swap{}, err
	}
	swap.ID = id

	observability.SwapsByStatus.WithLabelValues(string(domain.SwapPending)).Inc()
	return swap, nil
}

// AcceptSwap attaches an accepting shift, moving the swap to accepted.
// The accepter may not be the requester's own shift.
func (m *Manager) AcceptSwap(swapID, accepterShiftID int64) (domain.Swap, error) {
	swap, err := m.swaps.GetSwap(swapID)
	if err != nil {
		return domain.Swap{}, err
	}
	if swap == nil {
		return domain.Swap{}, domain.NewError(domain.KindNotFound, "swap not found", domain.ErrSwapNotFound)
	}
	if swap.Status != domain.SwapPending {
		return domain.Swap{}, domain.NewError(domain.KindPreconditionViolated, "swap is not pending", domain.ErrSwapNotOpen)
	}
	if accepterShiftID == swap.RequesterShiftID {
		return domain.Swap{}, domain.NewError(domain.KindPreconditionViolated, "cannot accept your own swap request", domain.ErrSelfSwap)
	}

	accepter, err := m.schedules.GetShift(accepterShiftID)
	if err != nil {
		return domain.Swap{}, err
	}
	if accepter == nil {
		return domain.Swap{}, domain.NewError(domain.KindNotFound, "accepting shift not found", domain.ErrShiftNotFound)
	}

	swap.AccepterShiftID = &accepterShiftID
	swap.Status = domain.SwapAccepted
	if err := m.swaps.UpdateSwap(*swap); err != nil {
		return domain.Swap{}, err
	}

	observability.SwapsByStatus.WithLabelValues(string(domain.SwapAccepted)).Inc()
	return *swap, nil
}

// ApproveSwap exchanges the employee_id fields of the two shifts inside
// one transaction (ExchangeShiftEmployees) and stamps approved_by/
// approved_at; terminal state (§4.5).
func (m *Manager) ApproveSwap(swapID int64, approvedBy string) (domain.Swap, error) {
	swap, err := m.swaps.GetSwap(swapID)
	if err != nil {
		return domain.Swap{}, err
	}
	if swap == nil {
		return domain.Swap{}, domain.NewError(domain.KindNotFound, "swap not found", domain.ErrSwapNotFound)
	}
	if swap.Status != domain.SwapAccepted {
		return domain.Swap{}, domain.NewError(domain.KindPreconditionViolated, "swap is not accepted", domain.ErrSwapNotOpen)
	}
	if swap.AccepterShiftID == nil {
		return domain.Swap{}, domain.NewError(domain.KindPreconditionViolated, "swap has no accepting shift", domain.ErrSwapNotOpen)
	}

	requesterShift, accepterShift, err := m.schedules.ExchangeShiftEmployees(swap.RequesterShiftID, *swap.AccepterShiftID)
	if err != nil {
		return domain.Swap{}, err
	}

	now := time.Now()
	swap.Status = domain.SwapApproved
	swap.ApprovedBy = approvedBy
	swap.ApprovedAt = &now
	if err := m.swaps.UpdateSwap(*swap); err != nil {
		return domain.Swap{}, err
	}

	if m.notifier != nil {
		m.notifier.Notify(requesterShift.EmployeeID, "your shift swap has been approved")
		m.notifier.Notify(accepterShift.EmployeeID, "your shift swap has been approved")
	}

	observability.SwapsByStatus.WithLabelValues(string(domain.SwapApproved)).Inc()
	return *swap, nil
}

// DenySwap transitions a pending or accepted swap to denied.
func (m *Manager) DenySwap(swapID int64) (domain.Swap, error) {
	return m.closeSwap(swapID, domain.SwapDenied)
}

// CancelSwap is restricted to the requester, transitioning a pending or
// accepted swap to cancelled.
func (m *Manager) CancelSwap(swapID, requesterEmployeeID int64) (domain.Swap, error) {
	swap, err := m.swaps.GetSwap(swapID)
	if err != nil {
		return domain.Swap{}, err
	}
	if swap == nil {
		return domain.Swap{}, domain.NewError(domain.KindNotFound, "swap not found", domain.ErrSwapNotFound)
	}
	requesterShift, err := m.schedules.GetShift(swap.RequesterShiftID)
	if err != nil {
		return domain.Swap{}, err
	}
	if requesterShift == nil || requesterShift.EmployeeID != requesterEmployeeID {
		return domain.Swap{}, domain.NewError(domain.KindPreconditionViolated, "only the requester may cancel this swap", domain.ErrSelfSwap)
	}
	return m.closeSwap(swapID, domain.SwapCancelled)
}

func (m *Manager) closeSwap(swapID int64, terminal domain.SwapStatus) (domain.Swap, error) {
	swap, err := m.swaps.GetSwap(swapID)
	if err != nil {
		return domain.Swap{}, err
	}
	if swap == nil {
		return domain.Swap{}, domain.NewError(domain.KindNotFound, "swap not found", domain.ErrSwapNotFound)
	}
	if swap.Status != domain.SwapPending && swap.Status != domain.SwapAccepted {
		return domain.Swap{}, domain.NewError(domain.KindPreconditionViolated, "swap is not pending or accepted", domain.ErrSwapNotOpen)
	}

	swap.Status = terminal
	if err := m.swaps.UpdateSwap(*swap); err != nil {
		return domain.Swap{}, err
	}
	observability.SwapsByStatus.WithLabelValues(string(terminal)).Inc()
	return *swap, nil
}
