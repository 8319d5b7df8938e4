// Package osutils содержит подсказки планировщику ОС: привязку потока
// к ядру и повышение приоритета процесса. Ошибки можно игнорировать.
package osutils

import "runtime"

// LogicalCores возвращает число логических ядер
func LogicalCores() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// CoreFor выбирает ядро для воркера с номером index
func CoreFor(index int) int {
	return index % LogicalCores()
}
