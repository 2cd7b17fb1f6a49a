package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"time"

	apperrors "go-image-processing/internal/errors"
	"go-image-processing/internal/filter"
	"go-image-processing/internal/imaging"
	"go-image-processing/internal/nasa"
	"go-image-processing/internal/observer"
	"go-image-processing/internal/repository"
	"go-image-processing/internal/segmentation"
	"go-image-processing/internal/storage"
	"go-image-processing/pkg/models"
)

// Filter names accepted by FilterImage.
const (
	FilterBox      = "box"
	FilterGaussian = "gaussian"
)

// Segmentation algorithm names accepted by SegmentImage.
const (
	AlgorithmThresholding       = "thresholding"
	AlgorithmIsolatedPoints     = "isolated_points"
	AlgorithmLineDetection      = "line_detection"
	AlgorithmKirschEdges        = "kirsch_edge_detection"
	AlgorithmGlobalThresholding = "global_thresholding"
)

// ProcessingService coordinates image acquisition, filtering and
// segmentation into transport-ready responses.
type ProcessingService interface {
	FilterImage(ctx context.Context, request models.FilterRequest) (*models.FilterResponse, error)
	SegmentImage(ctx context.Context, request models.SegmentRequest) (*models.SegmentResponse, error)
	FetchEPICImages(ctx context.Context, count int) (*models.EPICResponse, error)
	ValidateImageURL(imageURL string) error
}

type processingService struct {
	imageRepo     repository.ImageRepository
	epic          *nasa.Client
	saver         storage.Saver
	events        observer.Subject
	maxPixels     int
	maxIterations int
}

// NewProcessingService creates a new processing service. The saver and
// event subject are optional; a nil saver disables save_as requests. A
// non-positive maxPixels disables the pixel budget; a non-positive
// maxIterations falls back to the default iteration cap.
func NewProcessingService(
	imageRepository repository.ImageRepository,
	epicClient *nasa.Client,
	saver storage.Saver,
	events observer.Subject,
	maxPixels int,
	maxIterations int,
) ProcessingService {
	if maxIterations <= 0 {
		maxIterations = segmentation.DefaultMaxIterations
	}
	return &processingService{
		imageRepo:     imageRepository,
		epic:          epicClient,
		saver:         saver,
		events:        events,
		maxPixels:     maxPixels,
		maxIterations: maxIterations,
	}
}

// FilterImage fetches the image at the request URL and applies the
// requested smoothing filter.
func (s *processingService) FilterImage(ctx context.Context, request models.FilterRequest) (*models.FilterResponse, error) {
	startTime := time.Now()
	s.publish(ctx, observer.ProcessingStarted, request.URL, request.Filter, 0, nil)

	img, err := s.fetchValidated(ctx, request.URL)
	if err != nil {
		s.publish(ctx, observer.ProcessingFailed, request.URL, request.Filter, time.Since(startTime), err)
		return nil, err
	}

	spec, err := filterSpec(request)
	if err != nil {
		s.publish(ctx, observer.ProcessingFailed, request.URL, request.Filter, time.Since(startTime), err)
		return nil, err
	}
	kernel, err := spec.Build()
	if err != nil {
		s.publish(ctx, observer.ProcessingFailed, request.URL, request.Filter, time.Since(startTime), err)
		return nil, err
	}

	padding := filter.ParsePaddingType(request.Padding)
	method := filter.ParseNormMethod(request.Normalization)

	filtered, err := filter.Convolve(img, kernel, padding, method)
	if err != nil {
		s.publish(ctx, observer.ProcessingFailed, request.URL, request.Filter, time.Since(startTime), err)
		return nil, err
	}

	data, err := encodeImage(filtered)
	if err != nil {
		s.publish(ctx, observer.ProcessingFailed, request.URL, request.Filter, time.Since(startTime), err)
		return nil, err
	}

	response := &models.FilterResponse{
		ImageURL:          request.URL,
		Filter:            request.Filter,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		ProcessingTimeSec: time.Since(startTime).Seconds(),
		Shape:             shapeOf(filtered),
		ImageData:         data,
	}

	if request.SaveAs != "" {
		path, err := s.save(filtered, request.SaveAs)
		if err != nil {
			s.publish(ctx, observer.ProcessingFailed, request.URL, request.Filter, time.Since(startTime), err)
			return nil, err
		}
		response.SavedPath = path
	}

	s.publish(ctx, observer.ProcessingCompleted, request.URL, request.Filter, time.Since(startTime), nil)
	return response, nil
}

// SegmentImage fetches the image at the request URL, converts it to
// grayscale and runs the requested segmentation algorithm.
func (s *processingService) SegmentImage(ctx context.Context, request models.SegmentRequest) (*models.SegmentResponse, error) {
	startTime := time.Now()
	s.publish(ctx, observer.ProcessingStarted, request.URL, request.Algorithm, 0, nil)

	img, err := s.fetchValidated(ctx, request.URL)
	if err != nil {
		s.publish(ctx, observer.ProcessingFailed, request.URL, request.Algorithm, time.Since(startTime), err)
		return nil, err
	}
	gray := imaging.Grayscale(img)

	response := &models.SegmentResponse{
		ImageURL:  request.URL,
		Algorithm: request.Algorithm,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Shape:     shapeOf(gray),
	}

	err = s.runSegmentation(gray, request, response)
	if err != nil {
		s.publish(ctx, observer.ProcessingFailed, request.URL, request.Algorithm, time.Since(startTime), err)
		return nil, err
	}

	response.ProcessingTimeSec = time.Since(startTime).Seconds()
	s.publish(ctx, observer.ProcessingCompleted, request.URL, request.Algorithm, time.Since(startTime), nil)
	return response, nil
}

func (s *processingService) runSegmentation(gray *imaging.Image, request models.SegmentRequest, response *models.SegmentResponse) error {
	padding := filter.ParsePaddingType(request.Padding)
	threshold := request.Threshold
	if threshold == 0 {
		threshold = segmentation.DefaultThresholdValue
	}

	switch request.Algorithm {
	case AlgorithmThresholding:
		return s.fillSingleResult(segmentation.Threshold(gray, threshold), request.SaveAs, response)

	case AlgorithmIsolatedPoints:
		opts := segmentation.DefaultPointOptions()
		opts.Padding = padding
		opts.IncludeDiagonal = request.IncludeDiagonal
		opts.Threshold = threshold
		points, err := segmentation.IsolatedPoints(gray, opts)
		if err != nil {
			return err
		}
		return s.fillSingleResult(points, request.SaveAs, response)

	case AlgorithmLineDetection:
		opts := segmentation.DefaultLineOptions()
		opts.Padding = padding
		opts.Threshold = threshold
		lines, err := segmentation.DetectLines(gray, opts)
		if err != nil {
			return err
		}
		response.DirectionMaps = make(map[string]string, len(lines))
		for direction, lineMap := range lines {
			data, err := encodeImage(lineMap)
			if err != nil {
				return err
			}
			response.DirectionMaps[string(direction)] = data
		}
		if request.SaveAs != "" {
			paths := make(map[string]string, len(lines))
			for direction, lineMap := range lines {
				path, err := s.save(lineMap, fmt.Sprintf("%s_%s", request.SaveAs, direction))
				if err != nil {
					return err
				}
				paths[string(direction)] = path
			}
			response.SavedPaths = paths
		}
		return nil

	case AlgorithmKirschEdges:
		opts := segmentation.DefaultKirschOptions()
		opts.Padding = padding
		edges, err := segmentation.KirschEdges(gray, opts)
		if err != nil {
			return err
		}
		response.DirectionMaps = make(map[string]string, len(edges))
		for direction, edgeMap := range edges {
			data, err := encodeImage(edgeMap)
			if err != nil {
				return err
			}
			response.DirectionMaps[string(direction)] = data
		}
		// The per-pixel maximum over all compass responses serves as the
		// combined edge map.
		return s.fillSingleResult(segmentation.KirschRunningMax(edges), request.SaveAs, response)

	case AlgorithmGlobalThresholding:
		opts := segmentation.DefaultGlobalThresholdOptions()
		opts.MaxIterations = s.maxIterations
		if request.InitialValue != 0 {
			opts.InitialThreshold = request.InitialValue
		}
		if request.DeltaT != 0 {
			opts.DeltaT = request.DeltaT
		}
		if request.MaxIterations != 0 {
			opts.MaxIterations = request.MaxIterations
		}
		result, err := segmentation.GlobalThreshold(gray, opts)
		if err != nil {
			return err
		}
		response.Threshold = &result.Threshold
		response.Thresholds = result.Thresholds
		response.Iterations = result.Iterations
		return s.fillSingleResult(result.Image, request.SaveAs, response)

	default:
		return apperrors.NewValidationError(
			fmt.Sprintf("unknown segmentation algorithm %q", request.Algorithm), nil)
	}
}

func (s *processingService) fillSingleResult(img *imaging.Image, saveAs string, response *models.SegmentResponse) error {
	data, err := encodeImage(img)
	if err != nil {
		return err
	}
	response.ImageData = data
	if saveAs != "" {
		path, err := s.save(img, saveAs)
		if err != nil {
			return err
		}
		response.SavedPath = path
	}
	return nil
}

// FetchEPICImages downloads the latest EPIC captures and saves them to
// the output directory.
func (s *processingService) FetchEPICImages(ctx context.Context, count int) (*models.EPICResponse, error) {
	if s.epic == nil {
		return nil, apperrors.NewInternalError("EPIC client is not configured", nil)
	}

	fetched, err := s.epic.FetchImages(ctx, count)
	if err != nil {
		return nil, err
	}

	response := &models.EPICResponse{Count: len(fetched)}
	for _, capture := range fetched {
		info := models.EPICImageInfo{
			Name:  capture.Meta.Image,
			Date:  capture.Meta.Date,
			URL:   capture.URL,
			Shape: shapeOf(capture.Image),
		}
		if s.saver != nil {
			path, err := s.save(capture.Image, capture.Meta.Image)
			if err != nil {
				return nil, err
			}
			info.SavedPath = path
		}
		response.Images = append(response.Images, info)
	}
	return response, nil
}

// ValidateImageURL validates the image URL.
func (s *processingService) ValidateImageURL(imageURL string) error {
	return s.imageRepo.ValidateImageURL(imageURL)
}

func (s *processingService) fetchValidated(ctx context.Context, imageURL string) (*imaging.Image, error) {
	if err := s.imageRepo.ValidateImageURL(imageURL); err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}

	img, err := s.imageRepo.FetchImage(ctx, imageURL)
	if err != nil {
		s.publish(ctx, observer.ImageFetchFailed, imageURL, "", 0, err)
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	s.publish(ctx, observer.ImageFetched, imageURL, "", 0, nil)

	if s.maxPixels > 0 && img.Height*img.Width > s.maxPixels {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("image of %dx%d pixels exceeds the %d pixel limit",
				img.Height, img.Width, s.maxPixels), nil)
	}
	return img, nil
}

func (s *processingService) save(img *imaging.Image, name string) (string, error) {
	if s.saver == nil {
		return "", apperrors.NewValidationError("image saving is not configured", nil)
	}
	return s.saver.SaveImage(toStdImage(img), name)
}

func (s *processingService) publish(ctx context.Context, eventType observer.EventType, imageURL, operation string, duration time.Duration, err error) {
	if s.events == nil {
		return
	}
	event := observer.ProcessingEvent{
		EventType:      eventType,
		Timestamp:      time.Now().UTC(),
		ImageURL:       imageURL,
		Operation:      operation,
		ProcessingTime: duration,
		Success:        err == nil,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	s.events.NotifyObservers(ctx, event)
}

func shapeOf(img *imaging.Image) models.ImageShape {
	return models.ImageShape{Height: img.Height, Width: img.Width, Channels: img.Channels}
}

func toStdImage(img *imaging.Image) image.Image {
	if img.IsColor() {
		return img.ToRGBA()
	}
	return img.ToGray()
}

// encodeImage serializes an image as a base64 PNG for JSON transport.
func encodeImage(img *imaging.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, toStdImage(img)); err != nil {
		return "", apperrors.NewProcessingError("failed to encode result image", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// filterSpec maps a filter request onto a kernel specification, filling in
// the historical defaults for omitted parameters.
func filterSpec(request models.FilterRequest) (filter.Spec, error) {
	size := request.KernelSize
	if size == 0 {
		size = 3
	}

	switch request.Filter {
	case FilterBox:
		return filter.BoxSpec{Size: size}, nil
	case FilterGaussian:
		k := request.K
		if k == 0 {
			k = 1
		}
		sigma := request.Sigma
		if sigma == 0 {
			sigma = 1
		}
		return filter.GaussianSpec{Size: size, K: k, Sigma: sigma}, nil
	default:
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("unknown filter %q", request.Filter), nil)
	}
}
