package apperrors

// Collector aggregates field-level validation errors so a request with
// several bad fields is rejected with one deterministic, field-attributed
// error. Fields keep the order in which they were checked.
type Collector struct {
	errs []*Error
}

func NewCollector() *Collector {
	return &Collector{}
}

// Add records err when it is non-nil. Non-validation errors are kept as-is
// so the first hard failure still surfaces with its own kind.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	if appErr := As(err); appErr != nil {
		c.errs = append(c.errs, appErr)
		return
	}
	c.errs = append(c.errs, Storage("validate", err))
}

// HasErrors reports whether anything was collected.
func (c *Collector) HasErrors() bool {
	return len(c.errs) > 0
}

// Err folds the collected errors into a single *Error. A lone error is
// returned unchanged; multiple errors become one validation error whose
// details carry the per-field breakdown in check order.
func (c *Collector) Err() error {
	switch len(c.errs) {
	case 0:
		return nil
	case 1:
		return c.errs[0]
	}

	fields := make([]map[string]any, 0, len(c.errs))
	for _, e := range c.errs {
		fields = append(fields, map[string]any{
			"code":    e.Code,
			"message": e.Message,
			"details": e.Details,
		})
	}

	return &Error{
		Kind:    KindValidation,
		Code:    "VALIDATION_FAILED",
		Message: "request validation failed",
		Details: map[string]any{"fields": fields},
	}
}
