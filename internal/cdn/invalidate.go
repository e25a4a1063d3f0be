package cdn

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

// CFClient abstracts the CloudFront invalidation API.
type CFClient interface {
	CreateInvalidation(ctx context.Context, params *cloudfront.CreateInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)
}

// maxPathsPerInvalidation is the AWS CloudFront limit on path entries in a
// single invalidation request.
// See: https://docs.aws.amazon.com/AmazonCloudFront/latest/DeveloperGuide/cloudfront-limits.html
const maxPathsPerInvalidation = 3000

// BuildPaths returns one wildcard invalidation path per legacy page
// directory. When the list would exceed the CloudFront per-request limit it
// collapses to a single /* wildcard, which invalidates everything at the
// cost of precision.
func BuildPaths(rels []string) []string {
	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		paths = append(paths, "/"+rel+"/*")
	}
	if len(paths) > maxPathsPerInvalidation {
		return []string{"/*"}
	}
	return paths
}

// Invalidate creates a cache invalidation for the given paths and returns
// the invalidation ID. A nil path list is a no-op.
func Invalidate(ctx context.Context, client CFClient, distributionID string, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}

	ref := fmt.Sprintf("redirgen-%d", time.Now().UnixNano())
	resp, err := client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: &distributionID,
		InvalidationBatch: &cftypes.InvalidationBatch{
			CallerReference: &ref,
			Paths: &cftypes.Paths{
				Quantity: int32Ptr(int32(len(paths))),
				Items:    paths,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating invalidation for distribution %s: %w", distributionID, err)
	}

	if resp.Invalidation == nil || resp.Invalidation.Id == nil {
		return "", nil
	}
	return *resp.Invalidation.Id, nil
}

func int32Ptr(i int32) *int32 { return &i }
