package affliora

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// ImageStore puts processed image bytes somewhere public and returns the URL
// they are reachable at.
type ImageStore interface {
	Put(ctx context.Context, filename string, data []byte) (string, error)
	Remove(ctx context.Context, filename string) error
}

// LocalImageStore writes uploads under the static directory.
type LocalImageStore struct {
	Dir string // static root, files land in Dir/uploads
}

func (s *LocalImageStore) Put(_ context.Context, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.Dir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return "/" + path.Join("public", uploadsSubdir, filename), nil
}

func (s *LocalImageStore) Remove(_ context.Context, filename string) error {
	// Ignore removal of files already gone.
	_ = os.Remove(filepath.Join(s.Dir, uploadsSubdir, filename))
	return nil
}

// CloudinaryImageStore uploads to a Cloudinary folder. Filenames double as
// public IDs so Remove can find them again.
type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryImageStore parses a cloudinary:// credential URL.
func NewCloudinaryImageStore(credentialURL, folder string) (*CloudinaryImageStore, error) {
	cld, err := cloudinary.NewFromURL(credentialURL)
	if err != nil {
		return nil, fmt.Errorf("affliora: cloudinary init: %w", err)
	}
	return &CloudinaryImageStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryImageStore) publicID(filename string) string {
	return path.Join(s.folder, strings.TrimSuffix(filename, path.Ext(filename)))
}

func (s *CloudinaryImageStore) Put(ctx context.Context, filename string, data []byte) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID: s.publicID(filename),
	})
	if err != nil {
		return "", fmt.Errorf("affliora: cloudinary upload: %w", err)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryImageStore) Remove(ctx context.Context, filename string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: s.publicID(filename)})
	if err != nil {
		return fmt.Errorf("affliora: cloudinary destroy: %w", err)
	}
	return nil
}

// processImage decodes an image from src, downsizes anything wider than
// maxImageWidth, and re-encodes as JPEG. Returns metadata and the encoded
// bytes.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	filename := slugifyFilename(originalName) + ".jpg"

	return Image{
		Filename:     filename,
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return Slugify(base)
}

// ensureUniqueFilename appends a counter if the filename is already taken by
// a previous upload.
func (a *App) ensureUniqueFilename(img *Image) {
	existing, _ := a.Store.ListImages()
	taken := make(map[string]bool, len(existing))
	for _, ex := range existing {
		taken[ex.Filename] = true
	}
	base := strings.TrimSuffix(img.Filename, ".jpg")
	candidate := img.Filename
	counter := 1
	for taken[candidate] {
		counter++
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
	img.Filename = candidate
}

func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	a.ensureUniqueFilename(&img)

	url, err := a.Images.Put(c.Request().Context(), img.Filename, data)
	if err != nil {
		return err
	}
	img.URL = url

	if err := a.Store.SaveImage(img); err != nil {
		return err
	}
	a.logActivity(c, "image_uploaded", img.Filename)

	return a.renderImageList(c)
}

func (a *App) handleImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	filename := c.Param("filename")
	if filename == "" {
		return c.String(http.StatusBadRequest, "Filename required")
	}

	if err := a.Images.Remove(c.Request().Context(), filename); err != nil {
		c.Logger().Errorf("affliora: remove image %s: %v", filename, err)
	}
	if err := a.Store.DeleteImage(filename); err != nil {
		return err
	}
	a.logActivity(c, "image_deleted", filename)

	return a.renderImageList(c)
}

func (a *App) handleImageList(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return a.renderImageList(c)
}

func (a *App) renderImageList(c echo.Context) error {
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminImages(images, CsrfToken(c)))
}
