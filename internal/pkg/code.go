package pkg

import (
	cryptoRand "crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
)

// RandDigits 生成 n 位数字串，注册时用作用户的排序序号 uId
func RandDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}

// RandHex 生成 n 字节随机数的十六进制串，用作密码重置令牌
func RandHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := cryptoRand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// FirstLetterUppercase 用户名统一为首字母大写，入库和查重都走这个形式
func FirstLetterUppercase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
