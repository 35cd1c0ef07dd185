package store

import "github.com/kouprlabs/voltaview/internal/api"

func pageOf[T Entity](list api.List[T]) Page[T] {
	return Page[T]{
		Data:          list.Data,
		Page:          list.Page,
		Size:          list.Size,
		TotalPages:    list.TotalPages,
		TotalElements: list.TotalElements,
	}
}

func probeOf(probe api.ProbeResult) Probe {
	return Probe{
		TotalPages:    probe.TotalPages,
		TotalElements: probe.TotalElements,
	}
}

// batchError turns a bulk-operation result into a typed error when anything
// failed, distinguishing partial from full failure.
func batchError(op string, result api.BatchResult) error {
	if len(result.Failed) == 0 {
		return nil
	}
	return &api.BatchError{Op: op, Failed: result.Failed, Succeeded: result.Succeeded}
}
