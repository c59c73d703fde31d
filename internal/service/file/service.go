package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding for uploaded photos
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rovicpogi/Stoninonew/internal/pkg/storage"
	"golang.org/x/image/draw"
)

const (
	// MaxPhotoDimension is the longest edge of a stored student photo.
	MaxPhotoDimension = 400
	photoQuality      = 85
)

var (
	ErrInvalidImage    = errors.New("invalid image: only jpg, jpeg, png allowed")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// sniffLen matches the amount of data mimetype inspects by default.
const sniffLen = 3072

// Executables are refused whatever their extension says.
var blockedTypes = []string{
	"application/vnd.microsoft.portable-executable",
	"application/x-elf",
	"application/x-mach-binary",
	"application/x-msdownload",
}

type FileService interface {
	// UploadStudentPhoto resizes the photo to at most MaxPhotoDimension and stores it as JPEG.
	UploadStudentPhoto(ctx context.Context, studentID string, file io.Reader, filename string) (string, error)

	// UploadAssignmentFile stores a teacher's handout under assignments/<teacherID>/.
	UploadAssignmentFile(ctx context.Context, teacherID string, file io.Reader, filename string) (string, error)

	// UploadSubmissionFile stores a student's work under submissions/<assignmentID>/<studentID>/.
	UploadSubmissionFile(ctx context.Context, assignmentID, studentID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	FileURL(path string) string
	// PathFromURL reverses FileURL; ok is false for URLs this storage did not produce.
	PathFromURL(url string) (string, bool)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{storage: storage}
}

func (s *fileServiceImpl) UploadStudentPhoto(ctx context.Context, studentID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrInvalidImage
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	if mt := mimetype.Detect(buffer); !mt.Is("image/jpeg") && !mt.Is("image/png") {
		return "", ErrInvalidImage
	}

	thumb, err := thumbnail(buffer, MaxPhotoDimension)
	if err != nil {
		return "", err
	}

	p := path.Join("students", studentID, uuid.New().String()+".jpg")
	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(thumb), p, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload student photo: %w", err)
	}
	return uploaded, nil
}

func (s *fileServiceImpl) UploadAssignmentFile(ctx context.Context, teacherID string, file io.Reader, filename string) (string, error) {
	body, contentType, err := sniff(file)
	if err != nil {
		return "", err
	}

	p := path.Join("assignments", teacherID, uuid.New().String()+strings.ToLower(filepath.Ext(filename)))
	uploaded, err := s.storage.Upload(ctx, body, p, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload assignment file: %w", err)
	}
	return uploaded, nil
}

func (s *fileServiceImpl) UploadSubmissionFile(ctx context.Context, assignmentID, studentID string, file io.Reader, filename string) (string, error) {
	body, contentType, err := sniff(file)
	if err != nil {
		return "", err
	}

	p := path.Join("submissions", assignmentID, studentID, uuid.New().String()+strings.ToLower(filepath.Ext(filename)))
	uploaded, err := s.storage.Upload(ctx, body, p, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload submission file: %w", err)
	}
	return uploaded, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) FileURL(path string) string {
	return s.storage.URL(path)
}

func (s *fileServiceImpl) PathFromURL(url string) (string, bool) {
	prefix := s.storage.URL("")
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// sniff detects the content type from the head of r and returns a reader
// that still yields the whole stream.
func sniff(r io.Reader) (io.Reader, string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	for mt := detected; mt != nil; mt = mt.Parent() {
		for _, blocked := range blockedTypes {
			if mt.Is(blocked) {
				return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFile, detected.String())
			}
		}
	}
	return io.MultiReader(bytes.NewReader(head), r), detected.String(), nil
}

// thumbnail decodes buffer and re-encodes it as JPEG with its longest edge at
// most maxDim, keeping the aspect ratio. Smaller images are only re-encoded.
func thumbnail(buffer []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxDim || height > maxDim {
		if width >= height {
			height = max(1, height*maxDim/width)
			width = maxDim
		} else {
			width = max(1, width*maxDim/height)
			height = maxDim
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: photoQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
