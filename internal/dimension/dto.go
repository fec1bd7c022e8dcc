package dimension

type DimensionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DimensionsResponse struct {
	Kind       Kind                `json:"kind"`
	Dimensions []DimensionResponse `json:"dimensions"`
}

func (d *Dimension) ToResponse() DimensionResponse {
	return DimensionResponse{
		ID:   d.ID,
		Name: d.Name,
	}
}
