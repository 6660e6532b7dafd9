package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/tsawler/folio"
	"github.com/tsawler/folio/imaging"
)

// run executes one job end to end. It blocks on a worker slot, so callers
// always invoke it on its own goroutine. Uploaded files are removed when the
// job finishes, whatever the outcome.
func (s *Service) run(jobID string, paths []string) {
	s.slots <- struct{}{}
	defer func() { <-s.slots }()
	defer removeAll(paths)

	if err := s.store.MarkProcessing(jobID); err != nil {
		s.logger.Error("job.start.failed", "job_id", jobID, "err", err)
		return
	}
	s.logger.Info("job.processing", "job_id", jobID)

	fields, err := s.store.Fields(jobID)
	if err != nil {
		s.fail(jobID, fmt.Errorf("read job fields: %w", err))
		return
	}

	pages, err := s.loadPages(paths)
	if err != nil {
		s.fail(jobID, err)
		return
	}

	result := s.agent.ProcessDocument(pages, fields)
	payload, err := json.Marshal(result)
	if err != nil {
		s.fail(jobID, fmt.Errorf("encode result: %w", err))
		return
	}

	if err := s.store.Complete(jobID, payload); err != nil {
		s.logger.Error("job.complete.failed", "job_id", jobID, "err", err)
		return
	}
	s.logger.Info("job.completed", "job_id", jobID,
		"pages", result.Metadata.Pages, "time_sec", result.Metadata.TimeSec)
}

// loadPages turns the uploaded files into per-page recognition records.
// Images map one file to one page; a PDF expands to one page per rendered
// sheet. Page numbers follow submission order, starting at 1.
func (s *Service) loadPages(paths []string) ([]folio.PageInput, error) {
	var pages []folio.PageInput
	for _, path := range paths {
		if isPDF(path) {
			sheets, err := s.rasterizer.Rasterize(path)
			if err != nil {
				return nil, fmt.Errorf("rasterize %s: %w", path, err)
			}
			for _, sheet := range sheets {
				page, err := s.recognizePage(sheet, len(pages)+1)
				if err != nil {
					return nil, err
				}
				pages = append(pages, page)
			}
			continue
		}

		img, err := decodeImageFile(path)
		if err != nil {
			return nil, err
		}
		page, err := s.recognizePage(img, len(pages)+1)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// recognizePage normalizes one page image and runs recognition on it.
func (s *Service) recognizePage(img image.Image, number int) (folio.PageInput, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.Normalize(img)); err != nil {
		return folio.PageInput{}, fmt.Errorf("encode page %d: %w", number, err)
	}

	records, err := s.recognizer.RecognizeWords(buf.Bytes())
	if err != nil {
		return folio.PageInput{}, fmt.Errorf("recognize page %d: %w", number, err)
	}
	return folio.PageInput{Number: number, Records: records}, nil
}

func (s *Service) fail(jobID string, err error) {
	s.logger.Error("job.failed", "job_id", jobID, "err", err)
	if storeErr := s.store.Fail(jobID, err.Error()); storeErr != nil {
		s.logger.Error("job.fail.record", "job_id", jobID, "err", storeErr)
	}
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
