package compressor

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGzipCompressor(t *testing.T) {
	Convey("Given a GzipCompressor", t, func() {
		compressor := NewGzip()
		dir := t.TempDir()

		Convey("Compress method", func() {
			Convey("When compressing a valid file", func() {
				inputContent := []byte("CREATE TABLE orders (id INT PRIMARY KEY);\n")
				inputPath := filepath.Join(dir, "input.sql")
				So(os.WriteFile(inputPath, inputContent, 0o644), ShouldBeNil)

				outputPath := filepath.Join(dir, "output.sql.gz")

				Convey("It should produce a valid gzip file with the same content", func() {
					So(compressor.Compress(inputPath, outputPath), ShouldBeNil)

					gzipFile, err := os.Open(outputPath)
					So(err, ShouldBeNil)
					defer gzipFile.Close()

					gzipReader, err := gzip.NewReader(gzipFile)
					So(err, ShouldBeNil)
					defer gzipReader.Close()

					var decompressed bytes.Buffer
					_, err = decompressed.ReadFrom(gzipReader)
					So(err, ShouldBeNil)
					So(decompressed.Bytes(), ShouldResemble, inputContent)
				})

				Convey("Compressing the same input twice yields identical bytes", func() {
					secondPath := filepath.Join(dir, "output2.sql.gz")
					So(compressor.Compress(inputPath, outputPath), ShouldBeNil)
					So(compressor.Compress(inputPath, secondPath), ShouldBeNil)

					first, err := os.ReadFile(outputPath)
					So(err, ShouldBeNil)
					second, err := os.ReadFile(secondPath)
					So(err, ShouldBeNil)
					So(first, ShouldResemble, second)
				})
			})

			Convey("When the source file does not exist", func() {
				err := compressor.Compress(filepath.Join(dir, "nonexistent.sql"), filepath.Join(dir, "out.gz"))

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "open source file")
				})
			})

			Convey("When the destination path is invalid", func() {
				inputPath := filepath.Join(dir, "input.sql")
				So(os.WriteFile(inputPath, []byte("x"), 0o644), ShouldBeNil)

				err := compressor.Compress(inputPath, filepath.Join(dir, "missing", "out.gz"))

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "create dest file")
				})
			})
		})

		Convey("Decompress method", func() {
			Convey("When decompressing a valid gzip file", func() {
				inputContent := []byte("INSERT INTO orders VALUES (1);\n")
				gzipPath := filepath.Join(dir, "input.sql.gz")

				gzipFile, err := os.Create(gzipPath)
				So(err, ShouldBeNil)
				gzipWriter, err := gzip.NewWriterLevel(gzipFile, gzip.BestCompression)
				So(err, ShouldBeNil)
				_, err = gzipWriter.Write(inputContent)
				So(err, ShouldBeNil)
				So(gzipWriter.Close(), ShouldBeNil)
				So(gzipFile.Close(), ShouldBeNil)

				outputPath := filepath.Join(dir, "output.sql")

				Convey("It should restore the original content", func() {
					So(compressor.Decompress(gzipPath, outputPath), ShouldBeNil)

					restored, err := os.ReadFile(outputPath)
					So(err, ShouldBeNil)
					So(restored, ShouldResemble, inputContent)
				})
			})

			Convey("When the source is not a gzip file", func() {
				invalidPath := filepath.Join(dir, "plain.sql")
				So(os.WriteFile(invalidPath, []byte("not a gzip file"), 0o644), ShouldBeNil)

				err := compressor.Decompress(invalidPath, filepath.Join(dir, "out.sql"))

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "create gzip reader")
				})
			})

			Convey("When the source file does not exist", func() {
				err := compressor.Decompress(filepath.Join(dir, "nonexistent.gz"), filepath.Join(dir, "out.sql"))

				Convey("It should return an error", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "open source file")
				})
			})
		})
	})
}
