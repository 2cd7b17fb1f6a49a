package models

// FilterRequest represents a request for spatial filtering of a remote image
type FilterRequest struct {
	URL           string  `json:"url" binding:"required,url"`
	Filter        string  `json:"filter" binding:"required"`
	KernelSize    int     `json:"kernel_size,omitempty"`
	K             float64 `json:"k,omitempty"`
	Sigma         float64 `json:"sigma,omitempty"`
	Padding       string  `json:"padding,omitempty"`
	Normalization string  `json:"normalization,omitempty"`
	SaveAs        string  `json:"save_as,omitempty"`
}

// SegmentRequest represents a request for image segmentation
type SegmentRequest struct {
	URL             string  `json:"url" binding:"required,url"`
	Algorithm       string  `json:"algorithm" binding:"required"`
	Threshold       float64 `json:"threshold,omitempty"`
	IncludeDiagonal bool    `json:"include_diagonal,omitempty"`
	InitialValue    float64 `json:"initial_value,omitempty"`
	DeltaT          float64 `json:"delta_t,omitempty"`
	MaxIterations   int     `json:"max_iterations,omitempty"`
	Padding         string  `json:"padding,omitempty"`
	SaveAs          string  `json:"save_as,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ImageShape describes the dimensions of a processed image
type ImageShape struct {
	Height   int `json:"height"`
	Width    int `json:"width"`
	Channels int `json:"channels"`
}

// FilterResponse represents the response from a filtering request
type FilterResponse struct {
	ImageURL          string     `json:"image_url"`
	Filter            string     `json:"filter"`
	Timestamp         string     `json:"timestamp"`
	ProcessingTimeSec float64    `json:"processing_time_sec"`
	Shape             ImageShape `json:"shape"`
	ImageData         string     `json:"image_data"`
	SavedPath         string     `json:"saved_path,omitempty"`
}

// SegmentResponse represents the response from a segmentation request
type SegmentResponse struct {
	ImageURL          string            `json:"image_url"`
	Algorithm         string            `json:"algorithm"`
	Timestamp         string            `json:"timestamp"`
	ProcessingTimeSec float64           `json:"processing_time_sec"`
	Shape             ImageShape        `json:"shape"`
	ImageData         string            `json:"image_data,omitempty"`
	DirectionMaps     map[string]string `json:"direction_maps,omitempty"`
	Threshold         *float64          `json:"threshold,omitempty"`
	Thresholds        []float64         `json:"thresholds,omitempty"`
	Iterations        int               `json:"iterations,omitempty"`
	SavedPath         string            `json:"saved_path,omitempty"`
	SavedPaths        map[string]string `json:"saved_paths,omitempty"`
}

// EPICImageInfo describes a single downloaded EPIC capture
type EPICImageInfo struct {
	Name      string     `json:"name"`
	Date      string     `json:"date"`
	URL       string     `json:"url"`
	Shape     ImageShape `json:"shape"`
	SavedPath string     `json:"saved_path,omitempty"`
}

// EPICResponse represents the response from an EPIC fetch request
type EPICResponse struct {
	Count  int             `json:"count"`
	Images []EPICImageInfo `json:"images"`
}
