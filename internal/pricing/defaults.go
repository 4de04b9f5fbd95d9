package pricing

import "math"

const (
	ProviderAWS = "aws"
	ProviderGCP = "gcp"
)

var unbounded = math.Inf(1)

// S3Standard is the S3 Standard storage schedule:
// first 50 TB/month $0.023/GB, next 450 TB $0.022/GB, over 500 TB $0.021/GB.
var S3Standard = MustSchedule(
	Bucket{CapacityGB: 50_000, Rate: 0.023},
	Bucket{CapacityGB: 450_000, Rate: 0.022},
	Bucket{CapacityGB: unbounded, Rate: 0.021},
)

// Default returns the built-in catalog (us-east list prices).
func Default() *Catalog {
	classes := []StorageClass{
		{ID: "S3", Name: "Amazon S3", Provider: ProviderAWS, Storage: S3Standard},
		{ID: "S3IA", Name: "Amazon S3 Standard-IA", Provider: ProviderAWS, Storage: Flat(0.0125), RetrievalPerGB: 0.01},
		{ID: "S3SAZ", Name: "Amazon S3 Single AZ", Provider: ProviderAWS, Storage: Flat(0.01), RetrievalPerGB: 0.01},
		{ID: "glacier", Name: "Amazon Glacier", Provider: ProviderAWS, Storage: Flat(0.004), RetrievalPerGB: 0.03, RetrievalPerRequest: 0.01},
		{ID: "deep_archive", Name: "Amazon S3 Glacier Deep Archive", Provider: ProviderAWS, Storage: Flat(0.00099), RetrievalPerGB: 0.02, RetrievalPerRequest: 0.0001},
		{ID: "gcs_standard", Name: "Google Cloud Storage Standard", Provider: ProviderGCP, Storage: Flat(0.020)},
		{ID: "gcs_nearline", Name: "Google Cloud Storage Nearline", Provider: ProviderGCP, Storage: Flat(0.010), RetrievalPerGB: 0.01},
		{ID: "gcs_coldline", Name: "Google Cloud Storage Coldline", Provider: ProviderGCP, Storage: Flat(0.004), RetrievalPerGB: 0.02},
		{ID: "gcs_archive", Name: "Google Cloud Storage Archive", Provider: ProviderGCP, Storage: Flat(0.0012), RetrievalPerGB: 0.05},
	}
	egress := []EgressRate{
		{Provider: ProviderAWS, Destination: DestinationWithinCloud, Schedule: Flat(0)},
		{Provider: ProviderAWS, Destination: DestinationInternet, Schedule: MustSchedule(
			Bucket{CapacityGB: 10_240, Rate: 0.09},
			Bucket{CapacityGB: 40_960, Rate: 0.085},
			Bucket{CapacityGB: 102_400, Rate: 0.07},
			Bucket{CapacityGB: unbounded, Rate: 0.05},
		)},
		{Provider: ProviderGCP, Destination: DestinationWithinCloud, Schedule: Flat(0.01)},
		{Provider: ProviderGCP, Destination: DestinationInternet, Schedule: MustSchedule(
			Bucket{CapacityGB: 1_024, Rate: 0.12},
			Bucket{CapacityGB: 9_216, Rate: 0.11},
			Bucket{CapacityGB: unbounded, Rate: 0.08},
		)},
	}
	c, err := NewCatalog(classes, egress)
	if err != nil {
		panic(err)
	}
	return c
}
