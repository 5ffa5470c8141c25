// Package usecase は商品共有メッセージとメッセージアプリのディープリンクを組み立てます。
package usecase

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/platform/money"
)

// WhatsAppBase はURLエンコードしたメッセージを唯一のパラメータとして受け取ります。
const WhatsAppBase = "https://wa.me/?text="

// Origin は共有操作を開始した画面です。
type Origin string

const (
	FromList   Origin = "list"
	FromDetail Origin = "detail"
)

// ErrUnknownOrigin はlistとdetail以外のoriginに対して返されます。
var ErrUnknownOrigin = errors.New("unknown share origin")

// ParseOrigin は "list" と "detail" を受け付けます。空はlistとみなします。
func ParseOrigin(s string) (Origin, error) {
	switch Origin(s) {
	case "", FromList:
		return FromList, nil
	case FromDetail:
		return FromDetail, nil
	}
	return "", ErrUnknownOrigin
}

// Link は組み立て済みの共有内容です。
type Link struct {
	Message   string
	DetailURL string
	URL       string
}

// DetailURL はbaseURL配下の商品の正規ページです。
func DetailURL(baseURL, productID string) string {
	return strings.TrimRight(baseURL, "/") + "/dashboard/produto/" + productID
}

// ListMessage は商品一覧から共有する複数行のメッセージです。
func ListMessage(p entity.Product, detailURL string) string {
	var b strings.Builder
	b.WriteString("🛍️ *" + p.Nome + "*\n\n")
	b.WriteString("💰 *" + money.FormatBRL(p.Preco) + "*\n\n")
	if p.Descricao != "" {
		b.WriteString("📝 " + p.Descricao + "\n\n")
	}
	b.WriteString("🔗 *Veja mais detalhes:*\n" + detailURL + "\n\n")
	b.WriteString("✨ _Produto disponível agora!_")
	return b.String()
}

// DetailMessage は詳細ページから共有する1行のメッセージです。
func DetailMessage(p entity.Product, detailURL string) string {
	desc := p.Descricao
	if desc == "" {
		desc = "Sem descrição"
	}
	return fmt.Sprintf("Confira este produto: %s - %s por %s! Acesse: %s", p.Nome, desc, money.FormatBRL(p.Preco), detailURL)
}

// uriComponent はencodeURIComponentがエンコードしない文字を元に戻します。
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// WhatsAppLink はmessageをディープリンクのtextパラメータとしてエンコードします。
func WhatsAppLink(message string) string {
	return WhatsAppBase + uriComponent.Replace(url.QueryEscape(message))
}

// Compose はoriginに応じたメッセージとディープリンクを組み立てます。
func Compose(p entity.Product, origin Origin, baseURL string) Link {
	detail := DetailURL(baseURL, p.ID)
	msg := ListMessage(p, detail)
	if origin == FromDetail {
		msg = DetailMessage(p, detail)
	}
	return Link{Message: msg, DetailURL: detail, URL: WhatsAppLink(msg)}
}
