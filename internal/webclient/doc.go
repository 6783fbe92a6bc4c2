// Package webclient — клиентская сторона галереи на Go: HTTP-клиент к
// /api/upload и /api/images, выбранный файл, превью-ссылки, автомат формы
// загрузки и модель галереи с сигналом обновления. Тот же контракт
// исполняет встроенный upload.js в браузере.
package webclient
