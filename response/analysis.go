package response

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

type AnalyzeResponse struct {
	PDFID     uint   `json:"pdf_id"`
	PDFName   string `json:"pdf_name"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	TotalPage int    `json:"total_page,omitempty"`
}

type GroupResult struct {
	GroupID      int     `json:"group_id"`
	Similarity   float64 `json:"similarity"`
	Timestamp    string  `json:"timestamp"`
	Detail       string  `json:"detail"`
	HasPole      bool    `json:"has_pole"`
	HasTimestamp bool    `json:"has_timestamp"`
	HasDetail    bool    `json:"has_detail"`
	PoleName     string  `json:"pole_name"`
	Remark       string  `json:"remark"`
	Valid        bool    `json:"valid"`
}

type PageResult struct {
	Page          int           `json:"page"`
	PageID        uint          `json:"page_id"`
	PageName      string        `json:"page_name"`
	AvgSimilarity float64       `json:"avg_similarity"`
	PageValid     bool          `json:"page_valid"`
	Groups        []GroupResult `json:"groups"`
}

type InquiryResponse struct {
	PDFID            uint         `json:"pdf_id"`
	PDFName          string       `json:"pdf_name"`
	Progress         int          `json:"progress"`
	Status           string       `json:"status"`
	SumAvgSimilarity float64      `json:"sum_avg_similarity"`
	Message          string       `json:"message"`
	Result           []PageResult `json:"result"`
}
