package qrcode

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// ContentType описывает, как интерпретировать введенное значение.
// На форму хранения записи не влияет.
type ContentType string

const (
	ContentText      ContentType = "text"
	ContentLink      ContentType = "link"
	ContentPhone     ContentType = "phone"
	ContentWhatsApp  ContentType = "whatsapp"
	ContentContact   ContentType = "contact"
	ContentWiFi      ContentType = "wifi"
	ContentInstagram ContentType = "instagram"
	ContentYouTube   ContentType = "youtube"
	ContentEmail     ContentType = "email"
	ContentFacebook  ContentType = "facebook"
	ContentMessenger ContentType = "messenger"
)

type contentTypeInfo struct {
	displayName string
	placeholder string
}

// contentTypes is ordered the way the form lists them.
var contentTypes = []ContentType{
	ContentText,
	ContentLink,
	ContentPhone,
	ContentWhatsApp,
	ContentContact,
	ContentWiFi,
	ContentInstagram,
	ContentYouTube,
	ContentEmail,
	ContentFacebook,
	ContentMessenger,
}

var contentTypeTable = map[ContentType]contentTypeInfo{
	ContentText:      {displayName: "Texto", placeholder: "Digite seu texto aqui"},
	ContentLink:      {displayName: "Link", placeholder: "https://exemplo.com"},
	ContentPhone:     {displayName: "Telefone", placeholder: "+55 11 91234-5678"},
	ContentWhatsApp:  {displayName: "WhatsApp", placeholder: "https://wa.me/5511912345678"},
	ContentContact:   {displayName: "Contato", placeholder: "Nome, telefone, email"},
	ContentWiFi:      {displayName: "Wi-Fi", placeholder: "WIFI:T:WPA;S:NomeDaRede;P:senha;;"},
	ContentInstagram: {displayName: "Instagram", placeholder: "https://instagram.com/seuperfil"},
	ContentYouTube:   {displayName: "YouTube", placeholder: "https://youtube.com/@seucanal"},
	ContentEmail:     {displayName: "E-mail", placeholder: "mailto:contato@exemplo.com"},
	ContentFacebook:  {displayName: "Facebook", placeholder: "https://facebook.com/suapagina"},
	ContentMessenger: {displayName: "Messenger", placeholder: "https://m.me/suapagina"},
}

func (ContentType) Schema(_ huma.Registry) *huma.Schema {
	enum := make([]any, 0, len(contentTypes))
	for _, ct := range contentTypes {
		enum = append(enum, string(ct))
	}
	return &huma.Schema{
		Type:        "string",
		Enum:        enum,
		Description: "Тип содержимого QR-кода",
		Examples:    []any{ContentLink},
	}
}

// Validate проверяет, что значение из списка допустимых.
func (c ContentType) Validate() error {
	if _, ok := contentTypeTable[c]; !ok {
		return fmt.Errorf("неверный тип содержимого: %s", c)
	}
	return nil
}

func (c ContentType) String() string {
	return string(c)
}

func (c ContentType) DisplayName() string {
	if info, ok := contentTypeTable[c]; ok {
		return info.displayName
	}
	return "Desconhecido"
}

// Placeholder возвращает подсказку для поля ввода.
func (c ContentType) Placeholder() string {
	return contentTypeTable[c].placeholder
}

// ContentTypes возвращает все поддерживаемые типы в порядке отображения.
func ContentTypes() []ContentType {
	out := make([]ContentType, len(contentTypes))
	copy(out, contentTypes)
	return out
}
