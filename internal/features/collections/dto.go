package collections

type CreateCollectionRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

type UpdateCollectionRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

type ListCollectionsResponseDTO struct {
	Collections []*Collection `json:"collections"`
}
