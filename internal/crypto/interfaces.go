package crypto

// PasswordHasher отвечает за хранение паролей на сервере.
// Он не знает ничего о сети, базе данных или пользователях.
//
// Схема работы:
//
//	encoded = Hash(password)           (регистрация)
//	ok      = Verify(password, encoded) (логин)
//
// encoded - строка в PHC-формате "$argon2id$v=19$m=...,t=...,p=...$salt$key",
// поэтому параметры Argon2id можно менять без миграции старых хешей.
type PasswordHasher interface {
	// Hash генерирует случайную соль (16 байт) и возвращает закодированный хеш.
	Hash(password string) (string, error)

	// Verify пересчитывает хеш с параметрами и солью из encoded и сравнивает
	// за постоянное время. Возвращает ошибку только для повреждённого encoded.
	Verify(password, encoded string) (bool, error)
}
