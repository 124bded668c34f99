package gridfsadapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bucketName = "property_images"

// ImageStore keeps listing photos in a GridFS bucket. References are the hex file ids.
type ImageStore struct {
	bucket *gridfs.Bucket
}

func NewImageStore(database *mongo.Database) (*ImageStore, error) {
	bucket, err := gridfs.NewBucket(database, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &ImageStore{bucket: bucket}, nil
}

func (s *ImageStore) SaveImage(ctx context.Context, image entities.Image) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{"content_type": image.ContentType})
	stream, err := s.bucket.OpenUploadStream(filename(image), opts)
	if err != nil {
		return "", err
	}
	defer stream.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}

	if _, err := io.Copy(stream, bytes.NewReader(image.Data)); err != nil {
		return "", err
	}
	fileID, ok := stream.FileID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("gridfs returned a non-object file id")
	}
	return fileID.Hex(), nil
}

func (s *ImageStore) OpenImage(ctx context.Context, ref string) (entities.Image, error) {
	fileID, err := primitive.ObjectIDFromHex(strings.TrimSpace(ref))
	if err != nil {
		return entities.Image{}, domainerrors.ErrImageNotFound
	}
	stream, err := s.bucket.OpenDownloadStream(fileID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return entities.Image{}, domainerrors.ErrImageNotFound
		}
		return entities.Image{}, err
	}
	defer stream.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return entities.Image{}, err
	}
	image := entities.Image{Ref: ref, Data: data}
	if file := stream.GetFile(); file != nil {
		image.Filename = file.Name
		var meta struct {
			ContentType string `bson:"content_type"`
		}
		if len(file.Metadata) > 0 && bson.Unmarshal(file.Metadata, &meta) == nil {
			image.ContentType = meta.ContentType
		}
	}
	return image, nil
}

func (s *ImageStore) DeleteImage(_ context.Context, ref string) error {
	fileID, err := primitive.ObjectIDFromHex(strings.TrimSpace(ref))
	if err != nil {
		return domainerrors.ErrImageNotFound
	}
	if err := s.bucket.Delete(fileID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return domainerrors.ErrImageNotFound
		}
		return err
	}
	return nil
}

func filename(image entities.Image) string {
	if name := strings.TrimSpace(image.Filename); name != "" {
		return name
	}
	return "photo"
}
