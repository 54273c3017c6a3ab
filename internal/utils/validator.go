package utils

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var trans ut.Translator

func InitTrans() {
	lang := viper.GetString("server.lang")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {

		// report fields by the name the form or JSON body used
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			if name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]; name != "" && name != "-" {
				return name
			}
			return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		})

		zhT := zh.New()
		enT := en.New()

		uni := ut.New(enT, zhT, enT)

		var ok bool
		trans, ok = uni.GetTranslator(lang)
		if !ok {
			panic(fmt.Errorf("uni.GetTranslator(%s) failed", lang))
		}

		var err error
		switch lang {
		case "en":
			err = enTranslations.RegisterDefaultTranslations(v, trans)
		case "zh":
			err = zhTranslations.RegisterDefaultTranslations(v, trans)
		default:
			err = enTranslations.RegisterDefaultTranslations(v, trans)
		}
		if err != nil {
			panic(err.Error())
		}
	}
}

// ParseToValidationError turns a binding error into field messages, or a
// plain message for anything that is not a validation failure.
func ParseToValidationError(err error) any {
	var v validator.ValidationErrors
	if errors.As(err, &v) && trans != nil {
		return v.Translate(trans)
	}
	return "invalid param"
}

// ValidationMessage joins the translated messages into one line for pages.
func ValidationMessage(err error) string {
	switch res := ParseToValidationError(err).(type) {
	case validator.ValidationErrorsTranslations:
		msgs := make([]string, 0, len(res))
		for _, m := range res {
			msgs = append(msgs, m)
		}
		sort.Strings(msgs)
		return strings.Join(msgs, "; ")
	case string:
		return res
	}
	return "invalid param"
}

func GetTranslator() ut.Translator {
	return trans
}
