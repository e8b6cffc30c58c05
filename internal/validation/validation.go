package validation

import (
	"reflect"
	"strings"

	"github.com/dancedrill/dancedrill_backend/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// エラーにはGoのフィールド名ではなくJSONのフィールド名を使う
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct 構造体のvalidateタグを検証し、違反があれば全件を列挙して返す。
// 最初の1件で打ち切らず、すべてのフィールドエラーを返す
func Struct(s interface{}) *apperrors.ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &apperrors.ValidationError{
			Details: []apperrors.FieldError{{Field: "", Message: "入力値が不正です"}},
		}
	}

	details := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return &apperrors.ValidationError{Details: details}
}

// フィールドごとのエラーメッセージ。キーは "JSONフィールド名.タグ"
var fieldMessages = map[string]string{
	"userType.required":           "ユーザータイプを選択してください",
	"userType.oneof":              "ユーザータイプを選択してください",
	"lastName.required":           "姓を入力してください",
	"firstName.required":          "名を入力してください",
	"lastNameKana.required":       "姓（フリガナ）を入力してください",
	"firstNameKana.required":      "名（フリガナ）を入力してください",
	"lastNameRomaji.required":     "姓（ローマ字）を入力してください",
	"firstNameRomaji.required":    "名（ローマ字）を入力してください",
	"gender.required":             "性別を選択してください",
	"postalCode.required":         "郵便番号は7桁で入力してください",
	"postalCode.min":              "郵便番号は7桁で入力してください",
	"postalCode.max":              "郵便番号は7桁で入力してください",
	"address.required":            "住所を入力してください",
	"birthDate.required":          "生年月日を入力してください",
	"phone.required":              "電話番号を正しく入力してください",
	"phone.min":                   "電話番号を正しく入力してください",
	"email.required":              "有効なメールアドレスを入力してください",
	"email.email":                 "有効なメールアドレスを入力してください",
	"emailConfirm.required":       "有効なメールアドレスを入力してください",
	"emailConfirm.email":          "有効なメールアドレスを入力してください",
	"emailConfirm.eqfield":        "メールアドレスが一致しません",
	"password.required":           "パスワードは8文字以上で入力してください",
	"password.min":                "パスワードは8文字以上で入力してください",
	"passwordConfirm.required":    "パスワードは8文字以上で入力してください",
	"passwordConfirm.min":         "パスワードは8文字以上で入力してください",
	"passwordConfirm.eqfield":     "パスワードが一致しません",
	"parentalConsent.required_if": "保護者確認が必要です",
}

// message バリデーションエラーを日本語メッセージに変換
func message(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return fe.Field() + "を入力してください"
	case "email":
		return "有効なメールアドレスを入力してください"
	case "min":
		return fe.Field() + "が短すぎます"
	case "max":
		return fe.Field() + "が長すぎます"
	default:
		return fe.Field() + "の値が不正です"
	}
}

// IsValidEmail メールアドレス単体の形式チェック
func IsValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
