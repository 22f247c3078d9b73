package models

type OKResponse struct {
	OK bool `json:"ok"`
}

// ValidationIssue describes one rejected field of a request body.
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}
