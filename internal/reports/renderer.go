package reports

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-pdf/fpdf"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymapi/internal/telemetry/metrics"
)

const (
	KindAssessment = "assessment"
	KindMealPlan   = "meal_plan"

	cacheExpireSeconds = 60 * 60
	gymName            = "Alpphas GYM"
)

// Renderer draws PDF reports and caches the rendered bytes.
// Cache keys are derived from the full report content, so any change in the data
// (an edit, a new assessment in the evolution series) produces a new document.
type Renderer struct {
	cache          *freecache.Cache
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewRenderer(cacheSizeBytes int, metricsManager *metrics.Manager) *Renderer {
	return &Renderer{
		cache:          freecache.NewCache(cacheSizeBytes),
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (r *Renderer) RenderAssessment(report AssessmentReport) ([]byte, error) {
	return r.cached(KindAssessment, report, func(pdf *fpdf.Fpdf) {
		drawAssessment(pdf, report)
	})
}

func (r *Renderer) RenderMealPlan(report MealPlanReport) ([]byte, error) {
	return r.cached(KindMealPlan, report, func(pdf *fpdf.Fpdf) {
		drawMealPlan(pdf, report)
	})
}

func (r *Renderer) cached(kind string, report any, draw func(pdf *fpdf.Fpdf)) ([]byte, error) {
	key, err := cacheKey(kind, report)
	if err != nil {
		return nil, err
	}

	if doc, err := r.cache.Get(key); err == nil {
		if r.metricsManager != nil {
			r.metricsManager.CounterReportCacheHits.Inc()
		}
		return doc, nil
	}

	start := r.now()
	doc, err := render(draw)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, err)
	}
	if r.metricsManager != nil {
		r.metricsManager.CounterReportsRendered.WithLabelValues(kind).Inc()
		r.metricsManager.HistReportRenderDuration.Observe(time.Since(start).Seconds())
	}

	if err := r.cache.Set(key, doc, cacheExpireSeconds); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			log.Tracef("report %s too large to cache: %d bytes", kind, len(doc))
		} else {
			log.Warnf("cache report %s: %s", kind, err)
		}
	}

	return doc, nil
}

func render(draw func(pdf *fpdf.Fpdf)) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCreator(gymName, true)
	// fixed dates keep identical reports byte-identical
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetModificationDate(time.Unix(0, 0).UTC())
	pdf.SetCatalogSort(true)

	draw(pdf)

	if err := pdf.Error(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cacheKey(kind string, report any) ([]byte, error) {
	content, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal %s report: %w", kind, err)
	}
	sum := sha256.Sum256(content)
	return []byte(kind + ":" + hex.EncodeToString(sum[:])), nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
