package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperror "imobiliaria/internal/errors"
)

// FieldName é o campo multipart que carrega as fotos.
const FieldName = "fotos"

const msgApenasImagens = "Apenas arquivos de imagem são permitidos!"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var allowedMIMEs = []string{"image/jpeg", "image/png", "image/gif"}

// DiskStorage grava fotos de imóveis no diretório de uploads.
type DiskStorage struct {
	dir      string
	maxFiles int
	maxSize  int64
	now      func() time.Time
}

// NewDiskStorage cria o diretório de uploads se necessário.
func NewDiskStorage(dir string, maxFiles int, maxSize int64) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("falha ao criar diretório de uploads %s: %w", dir, err)
	}
	return &DiskStorage{dir: dir, maxFiles: maxFiles, maxSize: maxSize, now: time.Now}, nil
}

// Dir devolve o diretório servido em /uploads.
func (s *DiskStorage) Dir() string { return s.dir }

// MaxRequestSize é o limite para o corpo multipart inteiro (arquivos + campos).
func (s *DiskStorage) MaxRequestSize() int64 {
	return int64(s.maxFiles)*s.maxSize + 1<<20
}

// SaveAll valida e grava os arquivos na ordem recebida, devolvendo os nomes gerados.
// Se qualquer arquivo for rejeitado, os já gravados nesta chamada são removidos.
func (s *DiskStorage) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > s.maxFiles {
		return nil, apperror.NewValidationError(fmt.Sprintf("Máximo de %d arquivos por envio.", s.maxFiles))
	}

	// Valida tudo antes de gravar qualquer coisa
	for _, fh := range files {
		if err := s.checkHeader(fh); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		name, err := s.save(fh)
		if err != nil {
			s.RemoveAll(names)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *DiskStorage) checkHeader(fh *multipart.FileHeader) error {
	if !allowedExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return apperror.NewValidationError(msgApenasImagens)
	}
	if fh.Size > s.maxSize {
		return apperror.NewValidationError(fmt.Sprintf("Arquivo %s excede o tamanho máximo de %dMB.", fh.Filename, s.maxSize/(1024*1024)))
	}
	return nil
}

func (s *DiskStorage) save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", apperror.NewInternalError("Falha ao ler arquivo enviado", err)
	}
	defer src.Close()

	// O conteúdo precisa ser imagem, não só a extensão
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao ler arquivo enviado", err)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedMIMEs...) {
		return "", apperror.NewValidationError(msgApenasImagens)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperror.NewInternalError("Falha ao ler arquivo enviado", err)
	}

	name := fmt.Sprintf("%s-%d-%s%s", FieldName, s.now().UnixMilli(), uuid.NewString(), strings.ToLower(filepath.Ext(fh.Filename)))

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gravar foto", err)
	}

	// Limita a cópia ao tamanho máximo mesmo se o header mentir
	written, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filepath.Join(s.dir, name))
		return "", apperror.NewInternalError("Falha ao gravar foto", err)
	}
	if written > s.maxSize {
		os.Remove(filepath.Join(s.dir, name))
		return "", apperror.NewValidationError(fmt.Sprintf("Arquivo %s excede o tamanho máximo de %dMB.", fh.Filename, s.maxSize/(1024*1024)))
	}

	return name, nil
}

// Remove apaga uma foto pelo nome. Arquivo inexistente não é erro.
func (s *DiskStorage) Remove(name string) error {
	if !IsPlainName(name) {
		return apperror.NewValidationError("Nome de arquivo inválido.")
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperror.NewInternalError("Falha ao remover foto", err)
	}
	return nil
}

// RemoveAll tenta remover todos os arquivos e devolve o primeiro erro.
func (s *DiskStorage) RemoveAll(names []string) error {
	var first error
	for _, name := range names {
		if err := s.Remove(name); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// IsPlainName rejeita nomes que escapariam do diretório de uploads.
func IsPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
