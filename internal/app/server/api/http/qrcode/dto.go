package qrcode

import "qrkeeper/internal/domain/qrcode"

type generateInput struct {
	Body qrcode.GenerateRequest
}

type generateOutput struct {
	Body GenerateResponse
}

type GenerateResponse struct {
	qrcode.GenerateResult
	Link   string `json:"link" doc:"Ссылка, которую кодирует dynamic-код"`
	Status string `json:"status"`
}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Items []qrcode.ListItem `json:"items"`
}

type getInput struct {
	ID string `path:"id" example:"3Uy8tqfVdP2" doc:"ID QR-кода"`
}

type itemOutput struct {
	Body qrcode.ListItem
}

type updateDestinationInput struct {
	ID   string `path:"id" example:"3Uy8tqfVdP2" doc:"ID QR-кода"`
	Body struct {
		DestinationURL string `json:"destination_url" example:"https://example.com" doc:"Новый адрес назначения"`
	}
}

type contentTypesOutput struct {
	Body []ContentTypeInfo
}

type ContentTypeInfo struct {
	Value       qrcode.ContentType `json:"value"`
	DisplayName string             `json:"display_name"`
	Placeholder string             `json:"placeholder"`
}
