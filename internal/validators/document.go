package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func onlyDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit: módulo 11 com os pesos dados.
func checkDigit(digits string, weights []int) byte {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

// IsCPF valida os 11 dígitos e os dois dígitos verificadores.
func IsCPF(s string) bool {
	if !onlyDigits(s, 11) || allSame(s) {
		return false
	}
	w1 := []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	w2 := []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	return s[9] == checkDigit(s, w1) && s[10] == checkDigit(s, w2)
}

func IsCNPJ(s string) bool {
	if !onlyDigits(s, 14) || allSame(s) {
		return false
	}
	w1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	w2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return s[12] == checkDigit(s, w1) && s[13] == checkDigit(s, w2)
}

// IsLicense: número de registro do veterinário, 11 dígitos.
func IsLicense(s string) bool {
	return onlyDigits(s, 11) && s[0] != '0'
}

func Register(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"cpf":     IsCPF,
		"cnpj":    IsCNPJ,
		"license": IsLicense,
	}

	for tag, fn := range rules {
		fn := fn
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RegisterWithGin instala as tags no validator usado pelo ShouldBindJSON.
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}
