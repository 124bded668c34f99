package commands

import (
	"context"
	"fmt"
	"log/slog"

	"estatehub/contexts/listings/property-service/domain/entities"
	domainerrors "estatehub/contexts/listings/property-service/domain/errors"
	"estatehub/contexts/listings/property-service/ports"
)

func saveImages(ctx context.Context, store ports.ImageStore, uploads []entities.Image) ([]string, error) {
	refs := make([]string, 0, len(uploads))
	if len(uploads) == 0 {
		return refs, nil
	}
	if store == nil {
		return nil, fmt.Errorf("%w: image uploads are not supported", domainerrors.ErrInvalidProperty)
	}
	for _, upload := range uploads {
		if len(upload.Data) == 0 {
			continue
		}
		ref, err := store.SaveImage(ctx, upload)
		if err != nil {
			discardImages(ctx, store, nil, refs)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// discardImages removes stored images best-effort.
func discardImages(ctx context.Context, store ports.ImageStore, logger *slog.Logger, refs []string) {
	if store == nil {
		return
	}
	for _, ref := range refs {
		if err := store.DeleteImage(ctx, ref); err != nil && logger != nil {
			logger.Warn("image cleanup failed",
				"event", "property_image_cleanup_failed",
				"module", moduleName,
				"layer", "application",
				"image_ref", ref,
				"error", err.Error(),
			)
		}
	}
}
