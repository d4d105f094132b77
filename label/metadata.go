package label

// Metadata keys written onto candidates and extractions while evidence is
// collected. Values are JSON-serializable so LabelInfo can round-trip.
const (
	MetaSource                  = "source"
	MetaModelField              = "model_field"
	MetaVerification            = "verification"
	MetaBBox                    = "bbox"
	MetaImageIndex              = "image_index"
	MetaWarningHeaderBBox       = "warning_header_bbox"
	MetaWarningHeaderImageIndex = "warning_header_image_index"
	MetaWarningBoldness         = "warning_boldness"
	MetaFieldOfVision           = "field_of_vision"
)
