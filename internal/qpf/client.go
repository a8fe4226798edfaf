package qpf

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/image/draw"

	"github.com/ncuwatch/taoyuanwx/internal/config"
	"github.com/ncuwatch/taoyuanwx/internal/httputil"
	"github.com/ncuwatch/taoyuanwx/internal/metrics"
	"github.com/ncuwatch/taoyuanwx/internal/models"
)

// ElementName is the name of the synthetic precipitation element injected
// into each district after sampling.
const ElementName = "QPF"

type Fetcher struct {
	cfg    config.QPFConfig
	client *http.Client
}

func NewFetcher(cfg config.QPFConfig) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		client: httputil.NewClient(),
	}
}

// FetchFrames downloads every configured QPF raster concurrently and returns
// the cropped frames in order. A frame that cannot be fetched or decoded is
// returned as nil so the remaining horizons still get sampled.
func (f *Fetcher) FetchFrames() []*image.RGBA {
	frames := make([]*image.RGBA, len(f.cfg.URLs))

	var wg sync.WaitGroup
	for i, url := range f.cfg.URLs {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			img, err := f.fetchFrame(url)
			if err != nil {
				metrics.QPFFramesTotal.WithLabelValues(strconv.Itoa(i), "error").Inc()
				log.Printf("qpf: frame %d: %v", i, err)
				return
			}
			metrics.QPFFramesTotal.WithLabelValues(strconv.Itoa(i), "ok").Inc()
			frames[i] = img
		}(i, url)
	}
	wg.Wait()

	return frames
}

func (f *Fetcher) fetchFrame(url string) (*image.RGBA, error) {
	var src image.Image
	operation := func() error {
		resp, err := f.client.Get(url)
		if err != nil {
			return fmt.Errorf("fetch frame: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("fetch frame: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("fetch frame: status %d", resp.StatusCode))
		}

		src, err = png.Decode(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("decode png: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 1 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, err
	}

	return f.crop(src), nil
}

// crop copies the configured region of interest out of the source raster.
// The returned image is anchored at the origin so sampler pixel coordinates
// map directly onto the crop.
func (f *Fetcher) crop(src image.Image) *image.RGBA {
	roi := f.cfg.ROI
	dst := image.NewRGBA(image.Rect(0, 0, roi.XMax-roi.XMin, roi.YMax-roi.YMin))
	draw.Copy(dst, image.Point{}, src, image.Rect(roi.XMin, roi.YMin, roi.XMax, roi.YMax), draw.Src, nil)
	return dst
}

// Apply samples every frame over every district boundary and attaches the
// resulting precipitation element to the dataset. Districts without
// boundaries and frames that failed to download sample as zero.
func Apply(ds *models.Dataset, frames []*image.RGBA) {
	bounds, ok := ComputeBounds(ds.Districts)
	if !ok {
		log.Printf("qpf: no district boundaries loaded, skipping")
		return
	}

	now := time.Now()
	for _, d := range ds.Districts {
		elem := &models.WeatherElement{Name: ElementName}
		for fi, frame := range frames {
			val := 0.0
			if frame != nil && len(d.Polygons) > 0 {
				w := frame.Rect.Dx()
				h := frame.Rect.Dy()
				rings := ProjectRings(d.Polygons, bounds, w, h)
				val = SampleDistrict(rings, frame)
			}
			elem.Times = append(elem.Times, models.TimeStep{
				StartTime: fmt.Sprintf("T+%d", (fi+1)*6),
				DataTime:  now.Format(time.RFC3339),
				Values:    models.NewValueBag("value", val),
			})
		}
		d.Elements[ElementName] = elem
	}
}
