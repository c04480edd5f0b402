// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> preprocessor -> parser). They look for panics, hangs
// and broken span invariants on arbitrary inputs.
//
// Назначение: загрузить байты в FileSet и прогнать их через лексер,
// препроцессор и парсер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
