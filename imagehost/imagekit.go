package imagehost

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"
)

var _ Uploader = (*ImageKit)(nil)

// ImageKit uploads through the ImageKit SDK.
type ImageKit struct {
	ik   *imagekit.ImageKit
	opts Options
}

func NewImageKit(privateKey, publicKey, urlEndpoint string, opts Options) *ImageKit {
	ik := imagekit.NewFromParams(imagekit.NewParams{
		PrivateKey:  privateKey,
		PublicKey:   publicKey,
		UrlEndpoint: urlEndpoint,
	})
	return &ImageKit{ik: ik, opts: opts}
}

func (k *ImageKit) Upload(ctx context.Context, r io.Reader, fileName string) (*Result, error) {
	unique := true
	resp, err := k.ik.Uploader.Upload(ctx, r, uploader.UploadParam{
		FileName:          fileName,
		UseUniqueFileName: &unique,
		Tags:              strings.Join(k.opts.Tags, ","),
		Folder:            k.opts.Folder,
	})
	return uploadResult(resp, err)
}

// uploadResult maps an SDK upload response to a Result. The SDK reports a
// non-200 answer as an error too, so the status is checked first.
func uploadResult(resp *uploader.UploadResponse, err error) (*Result, error) {
	if resp != nil {
		status := resp.ResponseMetaData.StatusCode
		if status != 0 && status != http.StatusOK {
			if err != nil {
				return nil, fmt.Errorf("%w: imagekit status %d: %v", ErrUploadRejected, status, err)
			}
			return nil, fmt.Errorf("%w: imagekit status %d", ErrUploadRejected, status)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("imagekit upload: %w", err)
	}
	if resp == nil || resp.Data.Url == "" {
		return nil, fmt.Errorf("%w: imagekit returned no url", ErrUploadRejected)
	}

	return &Result{
		URL:        resp.Data.Url,
		FileID:     resp.Data.FileId,
		StatusCode: resp.ResponseMetaData.StatusCode,
	}, nil
}

func (k *ImageKit) Delete(ctx context.Context, fileID string) error {
	if _, err := k.ik.Media.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("imagekit delete %s: %w", fileID, err)
	}
	return nil
}
