package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dancedrill/dancedrill_backend/internal/config"
)

// Address 郵便番号検索の結果
type Address struct {
	Prefecture string `json:"prefecture"`
	City       string `json:"city"`
	Town       string `json:"town"`
}

// PostalService 郵便番号から住所を検索するサービスインターフェース
type PostalService interface {
	Lookup(postalCode string) (*Address, error)
}

// postalService 郵便番号検索API（zipcloud）を呼び出す実装
type postalService struct {
	client  *http.Client
	baseURL string
}

// NewPostalService PostalServiceを作成
func NewPostalService(cfg *config.Config) PostalService {
	return &postalService{
		client: &http.Client{
			Timeout: cfg.Postal.Timeout,
		},
		baseURL: cfg.Postal.BaseURL,
	}
}

// zipcloudResponse 郵便番号検索APIのレスポンス
type zipcloudResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Results []struct {
		Zipcode  string `json:"zipcode"`
		Address1 string `json:"address1"` // 都道府県
		Address2 string `json:"address2"` // 市区町村
		Address3 string `json:"address3"` // 町域
	} `json:"results"`
}

// Lookup 郵便番号で住所を検索。該当がない場合は (nil, nil)
func (s *postalService) Lookup(postalCode string) (*Address, error) {
	// ハイフンを削除してから問い合わせる
	cleaned := strings.ReplaceAll(postalCode, "-", "")

	reqURL := fmt.Sprintf("%s?zipcode=%s", s.baseURL, url.QueryEscape(cleaned))
	resp, err := s.client.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("郵便番号検索に失敗しました: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("郵便番号検索に失敗しました: ステータスコード %d", resp.StatusCode)
	}

	var body zipcloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("郵便番号検索のレスポンスを読み取れません: %v", err)
	}

	if body.Status != http.StatusOK || len(body.Results) == 0 {
		return nil, nil
	}

	r := body.Results[0]
	return &Address{
		Prefecture: r.Address1,
		City:       r.Address2,
		Town:       r.Address3,
	}, nil
}
